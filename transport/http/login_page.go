package http

import "html/template"

const loginTemplateName = "login.html"

// loginTemplate renders the provider's login form. The challenge travels in a
// hidden input and secureHash mirrors core.Solve for browser clients.
var loginTemplate = template.Must(template.New(loginTemplateName).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>OmniPay Provider</title>
</head>
<body>
  <h1>OmniPay Employee Login</h1>
  <form id="login-form">
    <input type="hidden" id="challenge" name="challenge" value="{{ .challenge }}">
    <button type="submit">Sign in</button>
  </form>
  <pre id="result"></pre>
  <script>
    function secureHash(challenge) {
      let out = "";
      let i = 0;
      for (const ch of challenge) {
        out += String.fromCodePoint(ch.codePointAt(0) + (i % 4) + 1);
        i++;
      }
      const bytes = new TextEncoder().encode(out);
      let bin = "";
      bytes.forEach(function (b) { bin += String.fromCharCode(b); });
      return btoa(bin);
    }

    document.getElementById("login-form").addEventListener("submit", async function (e) {
      e.preventDefault();
      const challenge = document.getElementById("challenge").value;
      const res = await fetch("/login", {
        method: "POST",
        headers: { "Content-Type": "application/json" },
        body: JSON.stringify({ challenge: challenge, response: secureHash(challenge) })
      });
      document.getElementById("result").textContent = await res.text();
    });
  </script>
</body>
</html>
`))
