package scenario

import "net/url"

// Fixture pages are self-contained inline documents served as data: URLs.
// They are swappable test data, not engine logic: a scenario cares only that
// the page exposes the selectors it scripts against.

// FixtureTitle is the title asserted by the title scenario.
const FixtureTitle = "Horrible looking test-page"

// EchoInput is the value typed and read back by the echo scenario. The
// multi-byte characters are deliberate: the round-trip must be
// byte-for-byte.
const EchoInput = "🛋🥔"

const titlePageHTML = `<!DOCTYPE html>
<html>
<head><title>` + FixtureTitle + `</title></head>
<body><h1 id="headline">gridsmoke fixture</h1></body>
</html>`

const echoPageHTML = `<!DOCTYPE html>
<html>
<head><title>Echo fixture</title></head>
<body><input id="echo" type="text" value=""></body>
</html>`

const counterPageHTML = `<!DOCTYPE html>
<html>
<head><title>Counter fixture</title></head>
<body>
<span id="count">0</span>
<button id="increment" onclick="var c=document.getElementById('count');c.textContent=(parseInt(c.textContent,10)+1).toString();">+1</button>
</body>
</html>`

// fixtureURL wraps an inline HTML document into a data: URL the browser can
// navigate to without any server.
func fixtureURL(html string) string {
	return "data:text/html;charset=utf-8," + url.PathEscape(html)
}
