package study

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/mpatel/biotutor/internal/history"
	"github.com/mpatel/biotutor/internal/session"
	"github.com/mpatel/biotutor/internal/ui/components"
	"github.com/mpatel/biotutor/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	if s.errMsg != "" {
		return centerCard(width, height,
			theme.Incorrect.Render("Cannot start session")+"\n\n"+
				theme.Body.Render(s.errMsg)+"\n\n"+
				theme.Hint.Render("Esc to go back and pick again"))
	}

	switch s.engine.Phase() {
	case session.PhaseEmpty:
		return s.viewEmpty(width, height)
	case session.PhaseConfiguring:
		return s.viewConfiguring(width, height)
	case session.PhaseActive:
		return s.viewActive(width, height)
	case session.PhaseConfirming:
		return s.viewConfirming(width, height)
	case session.PhaseSummary:
		return s.viewSummary(width, height)
	case session.PhaseReviewing:
		return s.viewReviewing(width, height)
	}
	return ""
}

func (s *StudyScreen) viewEmpty(width, height int) string {
	msg := "Nothing available here yet."
	if s.engine.Mode() == session.ModeReview {
		msg = "Nothing to review — everything you've answered is correct."
	}
	return centerCard(width, height,
		theme.Title.Render("All clear")+"\n\n"+
			theme.Body.Render(msg)+"\n\n"+
			theme.Hint.Render("Esc to go back"))
}

func (s *StudyScreen) viewConfiguring(width, height int) string {
	body := s.presets.View()
	if s.customCount {
		body = theme.Body.Render("Enter a question count:") + "\n\n" + s.countInput.View()
	}
	return centerCard(width, height,
		theme.Title.Render("Exam Setup")+"\n\n"+
			theme.Body.Render("How many questions?")+"\n\n"+
			body)
}

func (s *StudyScreen) viewActive(width, height int) string {
	rec := s.engine.Current()
	cfg := s.engine.Config()
	q := rec.Question

	var b strings.Builder

	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Module %d · %s", q.Module, q.Topic)) + "\n\n")
	b.WriteString(theme.Body.Bold(true).Render(q.Text) + "\n\n")
	b.WriteString(s.options.View())

	if marks := s.markLine(rec); marks != "" {
		b.WriteString("\n" + marks + "\n")
	}

	if cfg.Hints && q.Hints != nil {
		b.WriteString("\n" + s.hintLadder(rec))
	}

	if rec.Answered() && !cfg.FreeNavigation {
		b.WriteString("\n" + s.feedback(rec))
	}

	if cfg.FreeNavigation {
		b.WriteString("\n" + s.answerSheet())
	}

	return frame(b.String(), width)
}

// markLine shows the per-question toggles that are on.
func (s *StudyScreen) markLine(rec *session.Record) string {
	var parts []string
	if rec.Flagged {
		parts = append(parts, theme.Flagged.Render("⚑ flagged"))
	}
	if rec.ReviewLater {
		parts = append(parts, theme.Hint.Render("↻ review later"))
	}
	if s.env.Bookmarks != nil && s.env.Bookmarks.Contains(rec.Question.ID) {
		parts = append(parts, theme.Hint.Render("◎ bookmarked"))
	}
	if rec.Confidence != history.ConfidenceNone {
		parts = append(parts, theme.Hint.Render("confidence: "+string(rec.Confidence)))
	}
	return strings.Join(parts, "   ")
}

// hintLadder renders the revealed hint steps and how many remain.
func (s *StudyScreen) hintLadder(rec *session.Record) string {
	h := rec.Question.Hints
	var b strings.Builder
	for i := 0; i < rec.HintsRevealed; i++ {
		label, text := h.Level(i)
		b.WriteString(theme.Selected.Render(label+": ") + theme.Body.Render(text) + "\n")
	}
	if rec.HintsRevealed < h.Len() {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("H for a hint (%d of %d used)", rec.HintsRevealed, h.Len())) + "\n")
	}
	return b.String()
}

// feedback renders the post-answer explanation block for the gated
// modes, including the rationale follow-up where one applies.
func (s *StudyScreen) feedback(rec *session.Record) string {
	q := rec.Question
	var b strings.Builder

	if rec.Answer.Correct {
		b.WriteString(theme.Correct.Render("Correct!") + "\n")
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite.") + "\n")
	}
	b.WriteString(theme.Body.Render(q.Explanation) + "\n")
	if !rec.Answer.Correct && q.CommonMisconception != "" {
		b.WriteString(theme.Hint.Render("Watch out: "+q.CommonMisconception) + "\n")
	}

	if terms := s.env.Bank.TermsByID(q.GlossaryTermIDs); len(terms) > 0 {
		var names []string
		for _, t := range terms {
			names = append(names, t.Term)
		}
		b.WriteString(theme.Hint.Render("Key terms: "+strings.Join(names, ", ")) + "\n")
	}

	if s.engine.Config().RationaleFollowUps && q.Rationale != nil {
		b.WriteString("\n" + theme.Body.Bold(true).Render("Follow-up: "+q.Rationale.Text) + "\n\n")
		b.WriteString(s.rationale.View())
		if rec.RationaleAnswer != nil {
			b.WriteString(theme.Body.Render(q.Rationale.Explanation) + "\n")
		}
	}

	return b.String()
}

// answerSheet renders the exam navigator strip: one cell per question,
// marking answered and flagged entries.
func (s *StudyScreen) answerSheet() string {
	var cells []string
	for i, rec := range s.engine.Records() {
		cell := fmt.Sprintf("%d", i+1)
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if rec.Answered() {
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		if rec.Flagged {
			style = theme.Flagged
		}
		if i == s.engine.Index() {
			style = style.Bold(true).Underline(true)
		}
		cells = append(cells, style.Render(cell))
	}
	sheet := strings.Join(cells, " ")
	status := fmt.Sprintf("%d of %d answered", s.engine.AnsweredCount(), s.engine.Len())
	return theme.Hint.Render(status) + "\n" + sheet + "\n" +
		theme.Hint.Render("U jumps to the first unanswered question")
}

func (s *StudyScreen) viewConfirming(width, height int) string {
	unanswered := s.engine.Len() - s.engine.AnsweredCount()
	warning := "All questions answered."
	if unanswered > 0 {
		warning = fmt.Sprintf("%d unanswered — they will count as incorrect.", unanswered)
	}
	return centerCard(width, height,
		theme.Title.Render("Submit exam?")+"\n\n"+
			theme.Body.Render(warning)+"\n\n"+
			theme.Hint.Render("Y to submit · N to keep working"))
}

func (s *StudyScreen) viewSummary(width, height int) string {
	sum := session.Summarize(s.engine)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Results") + "\n\n")

	bar := components.NewProgressBar("Score", float64(sum.Percent)/100, true, 40)
	b.WriteString(bar.View() + "\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d correct · %d incorrect · %d total",
		sum.CorrectCount, sum.IncorrectCount, sum.TotalCount)) + "\n")
	if s.engine.Config().Timed {
		el := sum.Elapsed.Round(time.Second)
		b.WriteString(theme.Hint.Render("Time: "+el.String()) + "\n")
	}
	b.WriteString("\n")

	for i, rec := range s.engine.Records() {
		line := fmt.Sprintf("%-6s %s", s.indexBadge(i), truncate(rec.Question.Text, 56))
		var mark string
		switch {
		case !rec.Answered():
			mark = theme.Hint.Render("— skipped")
		case rec.Answer.Correct:
			mark = theme.Correct.Render("✓")
		default:
			mark = theme.Incorrect.Render("✗")
		}
		row := line + "  " + mark
		if i == s.summaryCursor {
			b.WriteString(theme.Selected.Render("▸ ") + row + "\n")
		} else {
			b.WriteString("  " + row + "\n")
		}
	}

	return frame(b.String(), width)
}

func (s *StudyScreen) viewReviewing(width, height int) string {
	rec := s.engine.Record(s.engine.ReviewIndex())
	q := rec.Question

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d · Module %d · %s",
		s.engine.ReviewIndex()+1, q.Module, q.Topic)) + "\n\n")
	b.WriteString(theme.Body.Bold(true).Render(q.Text) + "\n\n")

	for _, opt := range q.Options {
		line := fmt.Sprintf("  %s)  %s", opt.ID, opt.Text)
		switch {
		case opt.ID == q.CorrectOptionID:
			b.WriteString(theme.Correct.Render(line) + "\n")
		case rec.Answered() && opt.ID == rec.Answer.SelectedOptionID:
			b.WriteString(theme.Incorrect.Render(line) + "\n")
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n")
		}
	}
	b.WriteString("\n")

	if !rec.Answered() {
		b.WriteString(theme.Hint.Render("You left this one unanswered.") + "\n")
	}
	b.WriteString(theme.Body.Render(q.Explanation) + "\n")
	if q.CommonMisconception != "" && (!rec.Answered() || !rec.Answer.Correct) {
		b.WriteString(theme.Hint.Render("Watch out: "+q.CommonMisconception) + "\n")
	}

	return frame(b.String(), width)
}

func frame(content string, width int) string {
	cw := width - 8
	if cw > 84 {
		cw = 84
	}
	if cw < 20 {
		cw = 20
	}
	card := theme.Card.Width(cw).Render(content)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(card)
}

func centerCard(width, height int, content string) string {
	card := theme.Card.Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
