// Package outbound delivers router responses to the user. The router
// core never depends on delivery; its contract ends at returning the
// response.
package outbound

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/caravel-ai/caravel/internal/router"
)

// Channel is a sink for router responses.
type Channel interface {
	Deliver(resp *router.Response) error
}

// Console writes responses to a writer with light styling.
type Console struct {
	w io.Writer

	statusStyle  lipgloss.Style
	messageStyle lipgloss.Style
}

// NewConsole creates a console channel writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{
		w:            w,
		statusStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		messageStyle: lipgloss.NewStyle().PaddingLeft(2),
	}
}

// Deliver renders the response to the console.
func (c *Console) Deliver(resp *router.Response) error {
	header := c.statusStyle.Render(fmt.Sprintf("[%s] %s", resp.Status, resp.Intent))
	if _, err := fmt.Fprintln(c.w, header); err != nil {
		return err
	}
	_, err := fmt.Fprintln(c.w, c.messageStyle.Render(resp.Message))
	return err
}

var _ Channel = (*Console)(nil)
