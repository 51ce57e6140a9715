package livepreview

import (
	"strings"

	"github.com/vango-dev/mathlive/pkg/markup"
)

const pageStyle = `
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
textarea { width: 100%; font: 1rem ui-monospace, monospace; padding: .5rem; box-sizing: border-box; }
textarea.error { outline: 2px solid #cc0000; }
#preview { font-size: 1.4rem; min-height: 3rem; padding: 1rem 0; }
#diagnostic { color: #cc0000; font: 1rem ui-monospace, monospace; white-space: pre; }
`

const pageScript = `
(function () {
  var source = document.getElementById("source");
  var preview = document.getElementById("preview");
  var diagnostic = document.getElementById("diagnostic");
  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(scheme + location.host + "/ws");
  var last = 0;

  ws.onopen = function () {
    ws.send(JSON.stringify({ text: source.value }));
  };
  ws.onmessage = function (ev) {
    var u = JSON.parse(ev.data);
    if (u.seq && u.seq < last) { return; }
    last = u.seq || last;
    if (u.ok) {
      preview.innerHTML = u.html;
      preview.hidden = false;
      diagnostic.hidden = true;
      source.classList.remove("error");
    } else {
      diagnostic.textContent = u.message + "\n" + u.diagnostic;
      diagnostic.hidden = false;
      preview.hidden = true;
      source.classList.add("error");
    }
  };
  source.addEventListener("input", function () {
    if (ws.readyState === WebSocket.OPEN) {
      ws.send(JSON.stringify({ text: source.value }));
    }
  });
})();
`

// indexPage builds the editor page showing initial and its first result.
// The page keeps itself current over the /ws session.
func indexPage(title, initial string, first Update) markup.Page {
	preview := markup.El("div", markup.ID("preview"))
	diagnostic := markup.El("pre", markup.ID("diagnostic"))

	if first.OK {
		preview.Append(markup.Raw(first.HTML))
		diagnostic.Attrs["hidden"] = "true"
	} else {
		preview.Attrs["hidden"] = "true"
		diagnostic.Append(markup.Text(first.Message + "\n" + first.Diagnostic))
	}

	source := markup.El("textarea",
		markup.ID("source"),
		markup.A("rows", "4"),
		markup.A("spellcheck", "false"),
		markup.A("autofocus", "true"),
		markup.Class(errorClass(first)),
		initial,
	)

	return markup.Page{
		Title:   title,
		Styles:  []string{strings.TrimSpace(pageStyle)},
		Scripts: []string{strings.TrimSpace(pageScript)},
		Body: markup.Fragment(
			markup.El("h1", title),
			source,
			preview,
			diagnostic,
		),
	}
}

func errorClass(u Update) string {
	if u.OK {
		return ""
	}
	return "error"
}
