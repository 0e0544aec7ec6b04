// Package testutil provides test helpers for twscan tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// OriginalConfigJS is the build config shipped with the lyon project.
const OriginalConfigJS = `// tailwind.config.js
/** @type {import('tailwindcss').Config} */
module.exports = {
  content: [
    "./templates/**/*.html",
    "./core/templates/**/*.html",
    "./static/js/**/*.js",
  ],
  theme: {
    extend: {},
  },
  plugins: [],
}
`

// WriteFile creates a file with the given content in the specified directory,
// creating parent directories as needed, and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// ProjectFiles mirrors a small slice of the lyon Django project: templates
// and scripts the stock content globs match, plus files they must not.
var ProjectFiles = map[string]string{
	"templates/base.html": `<!DOCTYPE html>
<html lang="en">
<body class="bg-gray-50 text-gray-900 antialiased">
  <nav class="flex items-center justify-between px-4 py-2 md:px-8">
    <a href="{% url 'home' %}" class="text-xl font-bold hover:text-blue-600">Lyon</a>
  </nav>
  {% block content %}{% endblock %}
</body>
</html>
`,
	"core/templates/core/course_detail.html": `{% extends "base.html" %}
{% block content %}
<div class="container mx-auto grid grid-cols-1 gap-6 lg:grid-cols-3">
  <h1 class="text-3xl font-bold">{{ course.title }}</h1>
  <span class="{% if course.is_active %}bg-green-100{% else %}bg-red-100{% endif %} rounded-full px-2">x</span>
  <div class="w-[42rem] -mt-2 !p-4 bg-blue-500/50"></div>
</div>
{% endblock %}
`,
	"static/js/main.js": `document.querySelectorAll('[data-toggle]').forEach((el) => {
  el.classList.toggle('hidden');
  el.classList.add("shadow-lg", 'ring-2');
});
`,
	"static/css/input.css": `.btn { @apply px-4 py-2 not-scanned; }
`,
	"core/views.py": `context = {"css": "not-a-template-class"}
`,
}

// WriteProject writes ProjectFiles and the original config into a new temp
// directory and returns its path.
func WriteProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range ProjectFiles {
		WriteFile(t, dir, name, content)
	}
	WriteFile(t, dir, "tailwind.config.js", OriginalConfigJS)
	return dir
}
