package ui

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tienedev/shipkit-cli/internal/branding"
)

// Banner prints the boxed product banner.
func Banner() {
	body := st.bold.Render("⚡ "+branding.DisplayName()) + "\n" + st.muted.Render(branding.Tagline())
	fmt.Fprintln(out)
	fmt.Fprintln(out, st.box.BorderForeground(brandPrimary).Render(body))
	fmt.Fprintln(out)
}

// Success prints the completion box with the number of installed modules.
func Success(count int) {
	body := st.bold.Render("✓ "+branding.DisplayName()+" Ready!") + "\n" +
		st.muted.Render(fmt.Sprintf("%d %s installed", count, plural(count, "module", "modules")))
	fmt.Fprintln(out)
	fmt.Fprintln(out, st.box.BorderForeground(brandSuccess).Render(body))
	fmt.Fprintln(out)
}

// NextSteps prints the numbered follow-up instructions shown after init.
func NextSteps() {
	steps := []string{
		"Open Claude Code in this directory",
		fmt.Sprintf("Try %s or %s commands", st.bold.Render("/fix"), st.bold.Render("/review")),
		fmt.Sprintf("Run %s", st.accent.Render(branding.PackageSpec()+" add <module>")),
	}

	fmt.Fprintln(out, st.muted.Render("  Next steps:"))
	fmt.Fprintln(out)
	for i, s := range steps {
		fmt.Fprintf(out, "  %s %s\n", st.accent.Render(fmt.Sprintf("%d.", i+1)), s)
	}
	fmt.Fprintln(out)
}

// Section prints a section header with an optional subtitle.
func Section(title, subtitle string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, st.accent.Render("  ▸"), st.bold.Render(title))
	if subtitle != "" {
		fmt.Fprintln(out, st.muted.Render("    "+subtitle))
	}
	fmt.Fprintln(out)
}

// Module prints one module row: a filled dot when installed, a star when
// recommended, and the description (if any) underneath.
func Module(name, description string, installed, recommended bool) {
	icon := st.muted.Render("○")
	if installed {
		icon = st.success.Render("●")
		name = st.bold.Render(name)
	}
	star := ""
	if recommended {
		star = st.warning.Render(" ★")
	}

	fmt.Fprintf(out, "    %s %s%s\n", icon, name, star)
	if description != "" {
		fmt.Fprintln(out, st.muted.Render("      "+description))
	}
}

// Legend explains the Module row markers.
func Legend() {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "    %s installed  %s available  %s recommended\n",
		st.success.Render("●"), st.muted.Render("○"), st.warning.Render("★"))
}

// CategoryTitle returns the display title of a category name.
func CategoryTitle(category string) string {
	return cases.Title(language.English).String(category)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
