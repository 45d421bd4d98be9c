// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonathan/candidate-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func formatYears(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PrintCriteria outputs the normalized filter criteria.
func (p *Printer) PrintCriteria(c types.FilterCriteria) {
	var sb strings.Builder

	search := c.SearchTerm
	if search == "" {
		search = "(any)"
	}
	sb.WriteString(fmt.Sprintf("Search:     %s\n", search))

	required := "(none)"
	if len(c.RequiredSkills) > 0 {
		required = strings.Join(c.RequiredSkills, ", ")
	}
	sb.WriteString(fmt.Sprintf("Skills:     %s\n", required))

	minExp := "(none)"
	if c.HasMinExperience() {
		minExp = formatYears(*c.MinExperienceYears) + " years"
	}
	sb.WriteString(fmt.Sprintf("Min. exp.:  %s", minExp))

	p.printBox("FILTER CRITERIA", sb.String())
}

// PrintRankedCandidates outputs the top ranked candidates with their score breakdown.
func (p *Printer) PrintRankedCandidates(ranked *types.RankedCandidates) {
	if ranked == nil {
		return
	}
	if len(ranked.Candidates) == 0 {
		p.printBox("RANKED CANDIDATES", "No candidates matched the criteria.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates ranked: %d\n\n", ranked.Total))

	count := min(len(ranked.Candidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := ranked.Candidates[i]
		sb.WriteString(fmt.Sprintf("#%d  %s", i+1, c.Name))
		if c.CurrentCompany != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", c.CurrentCompany))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("    Score: %d [%s]  skills %d, exp %d\n",
			c.OverallScore, c.Band, c.SkillMatchScore, c.ExperienceScore))
		if len(c.MissingSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Missing: %s\n", truncate(strings.Join(c.MissingSkills, ", "), 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked.Candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(ranked.Candidates)-maxItemsToShow))
	}

	p.printBox("RANKED CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobDescription outputs the requirements a shortlist was ranked against.
func (p *Printer) PrintJobDescription(jd *types.JobDescription) {
	if jd == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", jd.Title))
	if jd.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", jd.Company))
	}
	if jd.MinExperienceYears > 0 {
		sb.WriteString(fmt.Sprintf("Min exp.: %s years\n", formatYears(jd.MinExperienceYears.Float())))
	}

	if len(jd.RequiredSkills) > 0 {
		sb.WriteString("\nRequired Skills:\n")
		count := min(len(jd.RequiredSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", jd.RequiredSkills[i]))
		}
		if len(jd.RequiredSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(jd.RequiredSkills)-maxItemsToShow))
		}
	}

	p.printBox("JOB DESCRIPTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPoolStats outputs the dashboard statistics.
func (p *Printer) PrintPoolStats(stats *types.PoolStats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates:        %d\n", stats.TotalCandidates))
	sb.WriteString(fmt.Sprintf("Job descriptions:  %d\n", stats.TotalJobDescriptions))
	sb.WriteString(fmt.Sprintf("Avg. experience:   %.1f years\n", stats.AverageExperience))
	sb.WriteString(fmt.Sprintf("Unique skills:     %d\n", stats.UniqueSkills))

	if len(stats.TopSkills) > 0 {
		sb.WriteString("\nTop Skills:\n")
		for _, s := range stats.TopSkills {
			sb.WriteString(fmt.Sprintf("  • %-20s %d\n", s.Skill, s.Count))
		}
	}

	p.printBox("CANDIDATE POOL", strings.TrimSuffix(sb.String(), "\n"))
}
