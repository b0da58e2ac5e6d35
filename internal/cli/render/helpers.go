package render

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	addressStyle       = color.New(color.FgWhite)
	timestampStyle     = color.New(color.Faint)
	pendingStyle       = color.New(color.FgYellow)
	verifiedStyle      = color.New(color.FgGreen)
	notVerifiedStyle   = color.New(color.FgRed)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	implPrefixStyle    = color.New(color.Faint)
	networkHeader      = color.New(color.BgCyan, color.FgBlack)
	networkHeaderBold  = color.New(color.BgCyan, color.FgBlack, color.Bold)
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[mGKHF]`)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}
	return color.New(color.FgRed).Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// statusLabel renders a verification status as a short colored word
func statusLabel(status models.VerificationStatus) string {
	label := cases.Title(language.English).String(strings.ToLower(string(status)))
	switch status {
	case models.VerificationStatusVerified:
		return verifiedStyle.Sprint("✓ " + label)
	case models.VerificationStatusFailed:
		return notVerifiedStyle.Sprint("✗ " + label)
	case models.VerificationStatusSkipped:
		return timestampStyle.Sprint("- " + label)
	case "":
		return pendingStyle.Sprint("? Unverified")
	default:
		return pendingStyle.Sprint("? " + label)
	}
}

// stripAnsiCodes removes ANSI escape sequences from a string
func stripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}
