package console

import (
	"fmt"
	"io"
	"strings"

	"imageguess-engine/internal/domain"
)

var medals = []string{"🥇", "🥈", "🥉"}

// Renderer writes session snapshots as terminal text. It holds no game state;
// everything it prints comes from the snapshot.
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render prints one snapshot.
func (r *Renderer) Render(snap domain.Snapshot) {
	switch snap.State {
	case domain.StateSetup:
		fmt.Fprintln(r.out, "-- setup: type 'start' to begin a session --")
	case domain.StatePlaying:
		r.renderPlaying(snap)
	case domain.StateFinished:
		r.renderFinished(snap)
	}
}

func (r *Renderer) renderPlaying(snap domain.Snapshot) {
	var b strings.Builder

	if snap.Mode == domain.ModeTimeAttack {
		fmt.Fprintf(&b, "Team %d — question %d", snap.TurnTeam+1, snap.QuestionIndex+1)
	} else {
		fmt.Fprintf(&b, "Round %d — question %d/%d", snap.Round, snap.QuestionIndex+1, snap.QueueLength)
	}
	if snap.TimerRemaining != nil {
		b.WriteString("  ")
		b.WriteString(r.formatTimer(snap))
	}
	b.WriteByte('\n')

	if q := snap.Question; q != nil {
		fmt.Fprintf(&b, "  [%s, %d pts]", q.Difficulty, q.Points)
		for _, img := range q.Images {
			fmt.Fprintf(&b, " %s", img)
		}
		b.WriteByte('\n')
		if snap.Revealed {
			fmt.Fprintf(&b, "  answer: %s\n", q.Answer)
		}
	}

	b.WriteString("  scores:")
	for team, score := range snap.Scores {
		marker := ""
		for _, t := range snap.ScoredTeams {
			if t == team {
				marker = "*"
				break
			}
		}
		fmt.Fprintf(&b, " T%d=%d%s", team+1, score, marker)
	}
	b.WriteByte('\n')

	fmt.Fprint(r.out, b.String())
}

func (r *Renderer) renderFinished(snap domain.Snapshot) {
	fmt.Fprintln(r.out, "-- final standings --")
	for rank, st := range snap.Standings {
		medal := "🎮"
		if rank < len(medals) {
			medal = medals[rank]
		}
		fmt.Fprintf(r.out, "%s Team %d — %d pts\n", medal, st.Team+1, st.Score)
	}
}

// formatTimer renders the per-team countdown as m:ss and the per-question one
// as bare seconds, flagging the warning threshold.
func (r *Renderer) formatTimer(snap domain.Snapshot) string {
	remaining := *snap.TimerRemaining
	var text string
	if snap.Mode == domain.ModeTimeAttack {
		text = fmt.Sprintf("⏱ %d:%02d", remaining/60, remaining%60)
	} else {
		text = fmt.Sprintf("⏱ %d", remaining)
	}
	if snap.TimerWarning {
		text += " !"
	}
	return text
}
