package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"talktimer/internal/timer"
)

//go:embed content/*.md
var contentFS embed.FS

// shortcutsTopic is generated from the live keymap rather than embedded.
const shortcutsTopic = "shortcuts"

func Topics() []string {
	topics := []string{shortcutsTopic}
	entries, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return topics
	}
	for _, path := range entries {
		base := filepath.Base(path)
		topic := strings.TrimSuffix(base, filepath.Ext(base))
		if topic != "" {
			topics = append(topics, topic)
		}
	}
	sort.Strings(topics)
	return topics
}

func Get(topic string) (string, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return "", false
	}
	if topic == shortcutsTopic {
		return Shortcuts(), true
	}
	b, err := contentFS.ReadFile(filepath.ToSlash(filepath.Join("content", topic+".md")))
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Shortcuts documents the presenter keymap as markdown.
func Shortcuts() string {
	var b strings.Builder
	b.WriteString("# Presenter shortcuts\n\n")
	fmt.Fprintf(&b, "Hold **%s** and press:\n\n", timer.ModifierName)
	b.WriteString("| Key | Action |\n|---|---|\n")
	for _, s := range timer.Shortcuts {
		fmt.Fprintf(&b, "| `%s+%s` | %s |\n", timer.ModifierName, s.Key, s.Help)
	}
	fmt.Fprintf(&b, "\nThe default talk length is %d minutes. ", timer.DefaultMinutes)
	b.WriteString("The counter border turns from black to yellow over the first half of the talk, then through orange to red.\n")
	return b.String()
}
