package ux

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

const rule = "=================================================="

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// Banner prints the runner title block.
func Banner(title string) {
	fmt.Printf("%s%s%s\n%s%s%s\n", Bold, title, Reset, Cyan, rule, Reset)
}

// Info prints a plain informational line.
func Info(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// Warn prints a warning to stderr.
func Warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%swarning:%s %s\n", Yellow, Reset, fmt.Sprintf(format, args...))
}

// StepHeader prints the step counter and name. The command preview is cut
// to 100 characters.
func StepHeader(index, total int, name, command string) {
	fmt.Printf("\n%s[%s]%s %s[%d/%d]%s %s%s%s\n",
		Dim, timestamp(), Reset, Cyan, index+1, total, Reset, Bold, name, Reset)
	if command == "" {
		return
	}
	if len(command) > 100 {
		command = command[:100] + "..."
	}
	fmt.Printf("   %sCommand:%s %s\n", Dim, Reset, command)
}

// StepSkip prints a skipped step.
func StepSkip(index, total int, name, reason string) {
	fmt.Printf("\n%s[%s]%s %s[%d/%d] – Skipping: %s (%s)%s\n",
		Dim, timestamp(), Reset, Dim, index+1, total, name, reason, Reset)
}

// StepNote prints an indented detail line under the current step.
func StepNote(format string, args ...any) {
	fmt.Printf("   %s\n", fmt.Sprintf(format, args...))
}

// StepComplete prints a step completion message.
func StepComplete(index int, duration time.Duration) {
	m := int(duration.Minutes())
	s := int(duration.Seconds()) % 60
	fmt.Printf("%s[%s]%s  %s✓ Step %d complete (%dm %02ds)%s\n",
		Dim, timestamp(), Reset, Green, index+1, m, s, Reset)
}

// StepFail prints a step failure message.
func StepFail(index int, name, errMsg string) {
	fmt.Printf("%s[%s]%s  %s✗ Step %d (%s) failed: %s%s\n",
		Dim, timestamp(), Reset, Red, index+1, name, errMsg, Reset)
}

// Success prints a final success message.
func Success(total int) {
	fmt.Printf("\n%s%s\n%s[%s]%s  %s%s══ All %d steps complete ══%s\n",
		Cyan, rule+Reset, Dim, timestamp(), Reset, Bold, Green, total, Reset)
}

// NextSteps prints the manual follow-up after a local workflow run.
func NextSteps(docsDir string, port int) {
	steps := []string{
		"1. Review the changes: git status",
		fmt.Sprintf("2. Preview locally: python -m http.server %d --directory %s", port, docsDir),
		"3. If satisfied, commit and push:",
		"   git add .",
		"   git commit -m 'Update documentation'",
		"   git push",
	}
	fmt.Printf("\n%sNext steps:%s\n   %s\n\n", Yellow, Reset, strings.Join(steps, "\n   "))
}

// VersionAdded reports a new manifest entry.
func VersionAdded(version, path string) {
	fmt.Printf("%s✓%s Added %s to %s\n", Green, Reset, version, path)
}

// VersionExists reports that the manifest already lists version.
func VersionExists(version, path string) {
	fmt.Printf("%sℹ%s %s already exists in %s\n", Cyan, Reset, version, path)
}

// LatestUpdated reports the new target of the latest pointer.
func LatestUpdated(version string) {
	fmt.Printf("%s✓%s Updated 'latest' to point to '%s'\n", Green, Reset, version)
}

// VersionsReordered reports that the manifest at path was rewritten into
// canonical order.
func VersionsReordered(path string) {
	fmt.Printf("%sℹ%s Normalized entry order in %s\n", Cyan, Reset, path)
}

// AliasUpdated reports the url now recorded for the latest alias.
func AliasUpdated(url string) {
	fmt.Printf("   'latest' entry url: %s\n", url)
}
