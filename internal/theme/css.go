package theme

import (
	"fmt"
	"strconv"
	"strings"
)

var radiusCSS = map[string]string{
	"none": "0", "small": "0.25rem", "medium": "0.5rem", "large": "0.75rem", "full": "9999px",
}

type shadows struct{ sm, md, lg string }

var shadowCSS = map[string]shadows{
	"none": {"none", "none", "none"},
	"light": {
		"0 1px 2px 0 rgb(0 0 0 / 0.03)",
		"0 4px 6px -1px rgb(0 0 0 / 0.05)",
		"0 10px 15px -3px rgb(0 0 0 / 0.05)",
	},
	"medium": {
		"0 1px 2px 0 rgb(0 0 0 / 0.05)",
		"0 4px 6px -1px rgb(0 0 0 / 0.08)",
		"0 10px 15px -3px rgb(0 0 0 / 0.08)",
	},
	"strong": {
		"0 1px 3px 0 rgb(0 0 0 / 0.1)",
		"0 4px 6px -1px rgb(0 0 0 / 0.15)",
		"0 10px 15px -3px rgb(0 0 0 / 0.15)",
	},
}

func lookup(m map[string]string, k, def string) string {
	if v, ok := m[k]; ok {
		return v
	}
	return def
}

type cssWriter struct{ strings.Builder }

func (w *cssWriter) v(name, value string) { fmt.Fprintf(&w.Builder, "  --%s: %s;\n", name, value) }

// GenerateCSS renders the :root custom properties for a resolved theme.
func GenerateCSS(cfg Config) string {
	c, t, s := cfg.Colors, cfg.Typography, cfg.Style
	sh, ok := shadowCSS[s.ShadowIntensity]
	if !ok {
		sh = shadowCSS["medium"]
	}
	fg := ColorToHSL(c.Foreground)
	card := "0 0% 100%"
	if c.Card != "" {
		card = ColorToHSL(c.Card)
	}
	cardFg := fg
	if c.CardForeground != "" {
		cardFg = ColorToHSL(c.CardForeground)
	}
	border := c.Border
	if border == "" {
		border = c.Muted
	}
	mono := t.MonoFont
	if mono == "" {
		mono = "monospace"
	}

	var w cssWriter
	w.WriteString(":root {\n")
	w.v("background", ColorToHSL(c.Background))
	w.v("foreground", fg)
	w.v("primary", ColorToHSL(c.Primary))
	w.v("primary-foreground", fg)
	w.v("secondary", ColorToHSL(c.Secondary))
	w.v("secondary-foreground", fg)
	w.v("accent", ColorToHSL(c.Accent))
	w.v("accent-foreground", "0 0% 100%")
	w.v("muted", ColorToHSL(c.Muted))
	w.v("muted-foreground", fg)
	w.v("card", card)
	w.v("card-foreground", cardFg)
	w.v("popover", card)
	w.v("popover-foreground", cardFg)
	w.v("border", ColorToHSL(border))
	w.v("input", ColorToHSL(border))
	w.v("ring", ColorToHSL(c.Primary))
	w.v("destructive", "0 84.2% 60.2%")
	w.v("destructive-foreground", "0 0% 98%")
	w.v("font-heading", fmt.Sprintf("'%s', serif", t.HeadingFont))
	w.v("font-body", fmt.Sprintf("'%s', sans-serif", t.BodyFont))
	w.v("font-mono", mono)
	w.v("font-size-base", strconv.Itoa(t.BaseFontSize)+"px")
	w.v("line-height", strconv.FormatFloat(t.LineHeight, 'f', -1, 64))
	w.v("radius", lookup(radiusCSS, s.BorderRadius, "0.25rem"))
	w.v("transition-speed", lookup(TransitionSpeed, s.TransitionSpeed, "300ms"))
	w.v("shadow-sm", sh.sm)
	w.v("shadow-md", sh.md)
	w.v("shadow-lg", sh.lg)
	w.v("theme-primary", c.Primary)
	w.v("theme-secondary", c.Secondary)
	w.v("theme-accent", c.Accent)
	w.WriteString("}\n")
	return w.String()
}

// GenerateDarkCSS renders the .dark overrides, with neutral defaults for unset dark colors.
func GenerateDarkCSS(cfg Config) string {
	primary := ColorToHSL(cfg.Colors.Primary)
	var w cssWriter
	w.WriteString(".dark {\n")
	d := cfg.DarkColors
	if d == nil {
		w.v("background", "0 0% 4%")
		w.v("foreground", "0 0% 98%")
		w.v("card", "0 0% 4%")
		w.v("card-foreground", "0 0% 98%")
		w.v("popover", "0 0% 4%")
		w.v("popover-foreground", "0 0% 98%")
		w.v("primary", primary)
		w.v("primary-foreground", "0 0% 98%")
		w.v("secondary", "0 0% 15%")
		w.v("secondary-foreground", "0 0% 98%")
		w.v("muted", "0 0% 15%")
		w.v("muted-foreground", "0 0% 64%")
		w.v("accent", "0 0% 15%")
		w.v("accent-foreground", "0 0% 98%")
		w.v("border", "0 0% 15%")
		w.v("input", "0 0% 15%")
		w.v("ring", "0 0% 83%")
		w.WriteString("}\n")
		return w.String()
	}

	or := func(v, def string) string {
		if v == "" {
			return def
		}
		return ColorToHSL(v)
	}
	bg := or(d.Background, "0 0% 4%")
	fg := or(d.Foreground, "0 0% 98%")
	muted := or(d.Muted, "0 0% 15%")
	w.v("background", bg)
	w.v("foreground", fg)
	w.v("primary", or(d.Primary, primary))
	w.v("secondary", or(d.Secondary, "0 0% 15%"))
	w.v("muted", muted)
	w.v("card", bg)
	w.v("card-foreground", fg)
	w.v("popover", bg)
	w.v("popover-foreground", fg)
	w.v("border", muted)
	w.v("input", muted)
	w.WriteString("}\n")
	return w.String()
}

// GenerateFullCSS is the light block followed by the dark block.
func GenerateFullCSS(cfg Config) string {
	return GenerateCSS(cfg) + "\n" + GenerateDarkCSS(cfg)
}
