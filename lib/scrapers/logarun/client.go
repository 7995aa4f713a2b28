package logarun

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "http://www.logarun.com/"

var ErrLoginFailed = fmt.Errorf("logarun rejected the login")
var ErrFetch = fmt.Errorf("fetch failed")
var ErrMarkup = fmt.Errorf("unexpected page markup")

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl when empty.
	BaseUrl string
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	// logarun occasionally serves transient 5xx pages
	client.SetRetryCount(5)
	client.SetRetryWaitTime(time.Second)
	client.SetRetryMaxWaitTime(time.Second * 10)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		if res == nil {
			return false
		}
		switch res.StatusCode() {
		case http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	})

	restyutilInstrument(client)

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
	return c, nil
}

// Login posts the logon form and verifies the session took. Logarun
// answers a rejected login by serving the logon form again.
func (c *Client) Login(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"LoginName":   username,
			"Password":    password,
			"SubmitLogon": "true",
			"LoginNow":    "Login",
		}).
		Post("/logon.aspx")
	if err != nil {
		span.SetStatus(codes.Error, "failed to post logon form")
		return fmt.Errorf("%w: %s", ErrFetch, err)
	}
	if res.StatusCode() >= 400 {
		span.SetStatus(codes.Error, "logon returned an error status")
		return fmt.Errorf("%w: logon.aspx returned status %d", ErrFetch, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse logon response")
		return fmt.Errorf("%w: %s", ErrMarkup, err)
	}

	if len(doc.Find("input[name='LoginName']").Nodes) > 0 {
		span.SetStatus(codes.Error, ErrLoginFailed.Error())
		return ErrLoginFailed
	}
	return nil
}
