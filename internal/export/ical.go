package export

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/onduty-eng/oncall-roster/internal/apperr"
	"github.com/onduty-eng/oncall-roster/internal/domain"
)

const icalDateTimeLayout = "20060102T150405"

// WriteICal writes one VEVENT per Shift into a single VCALENDAR. No
// iCalendar library appears anywhere in the retrieved corpus, so this
// follows RFC 5545's VCALENDAR/VEVENT grammar directly, at the level of
// detail spec §6 actually requires (no recurrence rules, no attendees —
// just one dated event per shift).
func WriteICal(shifts []domain.Shift, zone *time.Location, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperr.NewIOError("creating iCal file", err)
	}
	defer f.Close()

	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//oncall-roster//scheduler//EN\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")

	for _, s := range shifts {
		writeEvent(&b, s, zone)
	}

	b.WriteString("END:VCALENDAR\r\n")

	if _, err := f.WriteString(b.String()); err != nil {
		return apperr.NewIOError("writing iCal file", err)
	}
	return nil
}

func writeEvent(b *strings.Builder, s domain.Shift, zone *time.Location) {
	b.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(b, "UID:%s\r\n", shiftUID(s))
	fmt.Fprintf(b, "DTSTAMP:%s\r\n", s.Start.In(time.UTC).Format(icalDateTimeLayout)+"Z")
	fmt.Fprintf(b, "DTSTART;TZID=%s:%s\r\n", zone.String(), s.Start.In(zone).Format(icalDateTimeLayout))
	fmt.Fprintf(b, "DTEND;TZID=%s:%s\r\n", zone.String(), s.End.In(zone).Format(icalDateTimeLayout))
	fmt.Fprintf(b, "SUMMARY:%s — %s\r\n", escapeText(s.RoleName), escapeText(string(s.Engineer)))
	b.WriteString("END:VEVENT\r\n")
}

// shiftUID derives a stable identifier from (block, week, role,
// entry-index, weekday) — never a random UUID, since spec §6 requires
// UID stability across runs on identical input.
func shiftUID(s domain.Shift) string {
	raw := fmt.Sprintf("%d-%d-%s-%d-%s", s.Block, s.Week, s.Role, s.EntryIndex, s.Weekday)
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:]) + "@oncall-roster"
}

func escapeText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`,`, `\,`,
		`;`, `\;`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
