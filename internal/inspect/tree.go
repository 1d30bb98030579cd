// Package inspect renders object trees for humans.
package inspect

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/zeusync/scenecore/internal/core/scene"
)

type row struct {
	label string
	class string
	pos   string
	kinds string
}

// WriteTree prints one line per object of the subtree rooted at root:
// the indented name and id, the class, the world position and the
// component kinds. Columns are aligned by display width so wide names
// (CJK, emoji) do not break the layout.
func WriteTree(w io.Writer, root *scene.GameObject) error {
	var rows []row
	collect(root, "", "", &rows)

	width := 0
	classWidth := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r.label))
		classWidth = max(classWidth, runewidth.StringWidth(r.class))
	}

	bw := bufio.NewWriter(w)
	for _, r := range rows {
		line := runewidth.FillRight(r.label, width) + "  " +
			runewidth.FillRight(r.class, classWidth) + "  " + r.pos
		if r.kinds != "" {
			line += "  [" + r.kinds + "]"
		}
		if _, err := fmt.Fprintln(bw, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Tree returns WriteTree's output as a string.
func Tree(root *scene.GameObject) string {
	var sb strings.Builder
	_ = WriteTree(&sb, root)
	return sb.String()
}

func collect(o *scene.GameObject, prefix, branch string, rows *[]row) {
	p := o.Transform().WorldPosition()
	kinds := make([]string, 0, len(o.Components()))
	for _, c := range o.Components() {
		kinds = append(kinds, c.Kind())
	}
	class := o.ClassName()
	if class == "" {
		class = "-"
	}
	*rows = append(*rows, row{
		label: prefix + branch + o.String(),
		class: class,
		pos:   fmt.Sprintf("(%.2f, %.2f, %.2f)", p[0], p[1], p[2]),
		kinds: strings.Join(kinds, " "),
	})

	childPrefix := prefix
	switch branch {
	case "├─ ":
		childPrefix += "│  "
	case "└─ ":
		childPrefix += "   "
	}
	children := o.Children()
	for i, child := range children {
		b := "├─ "
		if i == len(children)-1 {
			b = "└─ "
		}
		collect(child, childPrefix, b, rows)
	}
}
