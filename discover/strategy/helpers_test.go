package strategy

import (
	"net/http"
	"net/url"
	"time"

	"github.com/poliscout/poliscout/discover/fetch"
)

// rewriteTransport sends every request to the test server while
// preserving the URL the caller asked for, so final-URL and same-domain
// logic sees the original host.
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.URL.Scheme = t.target.Scheme
	clone.URL.Host = t.target.Host

	resp, err := http.DefaultTransport.RoundTrip(clone)
	if resp != nil {
		resp.Request = req
	}
	return resp, err
}

// newTestFetcher returns a fetcher whose requests all land on the test
// server at serverURL
func newTestFetcher(serverURL string) *fetch.Fetcher {
	cfg := fetch.DefaultConfig()
	cfg.BackoffBase = time.Millisecond
	cfg.RetryAfterDefault = time.Millisecond
	cfg.RateInterval = time.Millisecond

	target, _ := url.Parse(serverURL)

	f := fetch.New(cfg, fetch.NewRateLimiter(cfg.RateInterval))
	f.Client = &http.Client{Transport: rewriteTransport{target: target}}
	return f
}

// policyPageHTML is a realistic privacy policy page used wherever a test
// needs content that passes both indicator counting and full validation.
const policyPageHTML = `<html><head><title>Privacy Policy - Example</title></head><body>
<article>
<h1>Privacy Policy</h1>
<p>Last updated: January 15, 2026. Effective date: February 1, 2026.</p>
<p>This privacy policy explains how we handle your personal data. We are
the data controller for the personal information described here, and our
data protection officer can be reached at privacy@example.com.</p>
<p>1. Information We Collect. We collect personal data you provide, such
as your name and email address, and information gathered automatically
through cookies and similar technologies. Third parties acting as our
service providers may collect personal information on our behalf.</p>
<p>2. How We Use Your Information. We use personal data to provide and
improve the services, to communicate with you and to ensure security.
Our lawful basis for processing includes consent, contract performance
and legitimate interest.</p>
<p>3. Cookies. We use cookies to remember preferences and measure usage.
You can opt out of analytics cookies at any time through your browser
settings.</p>
<p>4. Sharing. We share personal data with third-party processors under
data protection agreements and with authorities when required by law. We
do not sell personal information. Any transfer of personal data outside
your jurisdiction is protected by appropriate safeguards.</p>
<p>5. Your Rights. Under the GDPR and the CCPA you have the right to
access, the right to rectification, the right to erasure and the right
to object. To exercise your rights, contact us and we will respond
within the period required by data protection law.</p>
<p>6. Retention and Security. We retain personal data only as long as
necessary, and our retention schedule is reviewed annually. We protect
personal data with technical and organizational security measures,
including encryption in transit and at rest.</p>
<p>7. Children. The services are not directed to children under 16, and
we do not knowingly collect personal data from children. If a child has
provided personal information, contact us and we will delete it.</p>
<p>8. Changes. We may update this privacy statement; material changes
will be announced before they take effect. Questions about this privacy
policy or the processing of your personal data can be sent to
privacy@example.com.</p>
</article></body></html>`
