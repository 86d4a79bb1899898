package transport

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/flashkit/pkg/flash"
)

// QueueElementID is the id of the element QueueView renders and the SSE
// stream patches.
const QueueElementID = "flashkit-queue"

// QueueView renders the queue as a list of toasts. Buttons post back to the
// router mounted at basePath using datastar actions. Styling is left to the
// host application: every toast carries its color, location and timeout as
// data attributes.
func QueueView(items []flash.Notification, basePath string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div id="` + QueueElementID + `" class="flashkit-queue">`)
		for _, n := range items {
			writeToast(&b, n, basePath)
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeToast(b *strings.Builder, n flash.Notification, basePath string) {
	id := templ.EscapeString(n.ID)
	base := templ.EscapeString(strings.TrimRight(basePath, "/"))

	b.WriteString(`<div id="flashkit-toast-` + id + `" class="flashkit-toast" role="status"`)
	b.WriteString(` data-color="` + templ.EscapeString(n.Color) + `"`)
	b.WriteString(` data-location="` + templ.EscapeString(n.Location) + `"`)
	b.WriteString(` data-timeout="` + strconv.FormatInt(n.Timeout.Milliseconds(), 10) + `">`)
	b.WriteString(`<span class="flashkit-text">` + templ.EscapeString(n.Text) + `</span>`)

	for i, a := range n.Actions {
		b.WriteString(`<button type="button" class="flashkit-action"`)
		b.WriteString(` data-on-click="@post('` + base + `/notifications/` + id + `/actions/` + strconv.Itoa(i) + `')">`)
		b.WriteString(templ.EscapeString(a.Label) + `</button>`)
	}

	if n.Closable {
		b.WriteString(`<button type="button" class="flashkit-close" aria-label="Close"`)
		b.WriteString(` data-on-click="@delete('` + base + `/notifications/` + id + `')">&times;</button>`)
	}
	b.WriteString(`</div>`)
}
