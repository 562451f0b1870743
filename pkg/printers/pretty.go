package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/tracker/pkg/activity"
	"tableflip.dev/tracker/pkg/store"
)

// PrettyPrint writes user facing output. A nil Out writes to color.Output.
type PrettyPrint struct {
	Out io.Writer
}

// Writer is where output goes.
func (pp *PrettyPrint) Writer() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.Writer(), "")
}

// Println writes a plain message.
func (pp *PrettyPrint) Println(a ...any) {
	_, _ = fmt.Fprintln(pp.Writer(), a...)
}

// Printf writes a plain formatted message.
func (pp *PrettyPrint) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(pp.Writer(), format, a...)
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.Writer(), title)
}

// Tree prints the activity tree, one activity per line, indented by depth.
// Without color the output is exactly activity.Render.
func (pp *PrettyPrint) Tree(tree *activity.Tree) {
	name := color.New(color.Bold)
	minutes := color.New(color.Faint)
	w := pp.Writer()

	for depth, e := range activity.Walk(tree) {
		_, _ = fmt.Fprint(w, strings.Repeat(activity.Indent, depth))
		_, _ = name.Fprint(w, e.Name)
		_, _ = minutes.Fprintf(w, " (%d minutes)", e.Node.Time())
		_, _ = fmt.Fprintln(w)
	}
}

// Document prints the whole activity log as stored on disk.
func (pp *PrettyPrint) Document(tree *activity.Tree) error {
	b, err := store.Encode(tree)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(pp.Writer(), string(b))
	return nil
}

// Warn prints a highlighted warning.
func (pp *PrettyPrint) Warn(format string, a ...any) {
	y := color.New(color.FgHiYellow)
	_, _ = y.Fprintf(pp.Writer(), format+"\n", a...)
}

// Error reports err as "Error: <err>".
func (pp *PrettyPrint) Error(err error) {
	r := color.New(color.FgRed)
	_, _ = r.Fprintf(pp.Writer(), "Error: %v\n", err)
}
