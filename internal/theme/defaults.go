package theme

// palette expands a shade→hex list into a color scale.
func palette(shades ...string) map[string]any {
	steps := []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900", "950"}
	out := make(map[string]any, len(steps))
	for i, s := range steps {
		out[s] = shades[i]
	}
	return out
}

func defaultColors() map[string]any {
	return map[string]any{
		"inherit":     "inherit",
		"current":     "currentColor",
		"transparent": "transparent",
		"black":       "#000",
		"white":       "#fff",
		"gray": palette("#f9fafb", "#f3f4f6", "#e5e7eb", "#d1d5db", "#9ca3af",
			"#6b7280", "#4b5563", "#374151", "#1f2937", "#111827", "#030712"),
		"red": palette("#fef2f2", "#fee2e2", "#fecaca", "#fca5a5", "#f87171",
			"#ef4444", "#dc2626", "#b91c1c", "#991b1b", "#7f1d1d", "#450a0a"),
		"green": palette("#f0fdf4", "#dcfce7", "#bbf7d0", "#86efac", "#4ade80",
			"#22c55e", "#16a34a", "#15803d", "#166534", "#14532d", "#052e16"),
		"blue": palette("#eff6ff", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa",
			"#3b82f6", "#2563eb", "#1d4ed8", "#1e40af", "#1e3a8a", "#172554"),
	}
}

func defaultSpacing() map[string]any {
	return map[string]any{
		"px": "1px", "0": "0px", "0.5": "0.125rem", "1": "0.25rem",
		"1.5": "0.375rem", "2": "0.5rem", "2.5": "0.625rem", "3": "0.75rem",
		"3.5": "0.875rem", "4": "1rem", "5": "1.25rem", "6": "1.5rem",
		"7": "1.75rem", "8": "2rem", "9": "2.25rem", "10": "2.5rem",
		"11": "2.75rem", "12": "3rem", "14": "3.5rem", "16": "4rem",
		"20": "5rem", "24": "6rem", "28": "7rem", "32": "8rem",
		"36": "9rem", "40": "10rem", "44": "11rem", "48": "12rem",
		"52": "13rem", "56": "14rem", "60": "15rem", "64": "16rem",
		"72": "18rem", "80": "20rem", "96": "24rem",
	}
}

func defaultScreens() map[string]any {
	return map[string]any{
		"sm":  "640px",
		"md":  "768px",
		"lg":  "1024px",
		"xl":  "1280px",
		"2xl": "1536px",
	}
}

func defaultBorderRadius() map[string]any {
	return map[string]any{
		"none":    "0px",
		"sm":      "0.125rem",
		"DEFAULT": "0.25rem",
		"md":      "0.375rem",
		"lg":      "0.5rem",
		"xl":      "0.75rem",
		"2xl":     "1rem",
		"3xl":     "1.5rem",
		"full":    "9999px",
	}
}

func defaultFontFamily() map[string]any {
	return map[string]any{
		"sans": []any{"ui-sans-serif", "system-ui", "sans-serif", `"Apple Color Emoji"`,
			`"Segoe UI Emoji"`, `"Segoe UI Symbol"`, `"Noto Color Emoji"`},
		"serif": []any{"ui-serif", "Georgia", "Cambria", `"Times New Roman"`, "Times", "serif"},
		"mono": []any{"ui-monospace", "SFMono-Regular", "Menlo", "Monaco", "Consolas",
			`"Liberation Mono"`, `"Courier New"`, "monospace"},
	}
}

func defaultFontSize() map[string]any {
	size := func(fs, lh string) []any {
		return []any{fs, map[string]any{"lineHeight": lh}}
	}
	return map[string]any{
		"xs":   size("0.75rem", "1rem"),
		"sm":   size("0.875rem", "1.25rem"),
		"base": size("1rem", "1.5rem"),
		"lg":   size("1.125rem", "1.75rem"),
		"xl":   size("1.25rem", "1.75rem"),
		"2xl":  size("1.5rem", "2rem"),
		"3xl":  size("1.875rem", "2.25rem"),
		"4xl":  size("2.25rem", "2.5rem"),
		"5xl":  size("3rem", "1"),
		"6xl":  size("3.75rem", "1"),
	}
}
