package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/levelup/internal/domain"
)

const ledgerProgressBarWidth = 24

// FormatLedger renders a user's level, XP and progress toward the next level.
func FormatLedger(l *domain.UserLedger) string {
	var b strings.Builder
	b.WriteString(Header("Status") + "\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", LevelBadge(l.Level), Dim(l.UserID)))
	b.WriteString(fmt.Sprintf("XP       %s / %d\n", Bold(fmt.Sprint(l.XP)), domain.XPRequiredForNextLevel(l.Level)))
	b.WriteString(fmt.Sprintf("To next  %d\n", l.XPToNextLevel()))
	b.WriteString(RenderProgress(l.Progress(), ledgerProgressBarWidth) + "\n")
	return b.String()
}

// FormatLogSummary renders the outcome of logging one activity followed by a
// boxed insight per level crossed, lowest level first.
func FormatLogSummary(s *domain.LogSummary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", XPGain(s.XPGained), Bold(s.ActivityName)))
	b.WriteString(fmt.Sprintf("%s  %d / %d XP\n", LevelBadge(s.Level), s.XP, domain.XPRequiredForNextLevel(s.Level)))

	for _, up := range s.LevelUps {
		b.WriteString("\n")
		b.WriteString(RenderBox(fmt.Sprintf("Level %d reached", up.Level), up.Text))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatActivities renders the activity catalog as a table.
func FormatActivities(defs []domain.ActivityDefinition) string {
	if len(defs) == 0 {
		return Dim("No activities.") + "\n"
	}
	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		rows = append(rows, []string{Bold(d.Name), fmt.Sprintf("%d", d.XPValue), ProvenanceBadge(d.Provenance)})
	}
	return RenderTable([]string{"ACTIVITY", "XP", "SOURCE"}, rows)
}

// FormatHistory renders recent log entries, newest first, relative to now.
func FormatHistory(entries []domain.ActivityLogEntry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("Nothing logged yet.") + "\n"
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			Dim(HumanTimestampFrom(e.Timestamp, now)),
			e.ActivityName,
			XPGain(e.XPGained),
		})
	}
	return RenderTable([]string{"WHEN", "ACTIVITY", "XP"}, rows)
}

// FormatQuests renders suggested quests as a numbered list.
func FormatQuests(quests []domain.GeneratedQuest) string {
	if len(quests) == 0 {
		return Dim("No quests suggested.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Header("Suggested quests") + "\n")
	for i, q := range quests {
		b.WriteString(fmt.Sprintf("%s %s %s\n", Dim(fmt.Sprintf("%d.", i+1)), q.Name, XPGain(q.XP)))
	}
	return b.String()
}

// FormatRejection renders a refused activity definition with its reason code.
func FormatRejection(reason string, err error) string {
	return fmt.Sprintf("%s %s\n%s\n", StyleRed.Render("✖ Rejected:"), Bold(reason), Dim(err.Error()))
}
