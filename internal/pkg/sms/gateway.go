package sms

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/pkg/trace"
)

const firebaseBaseURL = "https://www.googleapis.com/identitytoolkit/v3"

const otpTemplate = "Hey there! {#var#} is your Handpickd verification code. Enjoy the freshest, Handpickd fruits & veggies in town!"

// Gateway delivers OTP codes and validates federated verification sessions.
type Gateway interface {
	SendOtp(ctx context.Context, countryCode, phoneNumber, otp string) error
	VerifyFirebase(ctx context.Context, verificationID, otp string) (int, error)
}

type GupshupConfig struct {
	URL      string
	UserID   string
	Password string
}

// Client is the production Gateway backed by Gupshup SMS and the Firebase
// identity toolkit.
type Client struct {
	http           *resty.Client
	gupshup        GupshupConfig
	firebaseAPIKey string
}

func NewClient(gupshup GupshupConfig, firebaseAPIKey string, timeout time.Duration) *Client {
	return &Client{
		http:           resty.New().SetTimeout(timeout),
		gupshup:        gupshup,
		firebaseAPIKey: firebaseAPIKey,
	}
}

func cleanCountryCode(countryCode string) string {
	return strings.ReplaceAll(countryCode, "+", "")
}

func (c *Client) SendOtp(ctx context.Context, countryCode, phoneNumber, otp string) error {
	msg := strings.Replace(otpTemplate, "{#var#}", otp, 1)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"method":      "SendMessage",
			"send_to":     cleanCountryCode(countryCode) + phoneNumber,
			"msg":         msg,
			"msg_type":    "Unicode_text",
			"userid":      c.gupshup.UserID,
			"auth_scheme": "plain",
			"password":    c.gupshup.Password,
			"v":           "1.1",
			"format":      "text",
		}).
		Get(c.gupshup.URL)
	if err != nil {
		return fmt.Errorf("gupshup request: %w", err)
	}
	// Gupshup reports errors in the body with a 200 status.
	if !strings.HasPrefix(resp.String(), "success") {
		log.Printf("sms_send trace_id=%s phone=%s gupshup_response=%q", trace.ID(ctx), phoneNumber, resp.String())
		return fmt.Errorf("gupshup rejected message")
	}
	return nil
}

// VerifyFirebase checks an OTP against a Firebase phone verification session
// and returns the upstream HTTP status; anything other than 200 means the
// code did not match.
func (c *Client) VerifyFirebase(ctx context.Context, verificationID, otp string) (int, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.firebaseAPIKey).
		SetBody(map[string]string{
			"code":        otp,
			"sessionInfo": verificationID,
		}).
		Post(firebaseBaseURL + "/relyingparty/verifyPhoneNumber")
	if err != nil {
		return 0, fmt.Errorf("firebase request: %w", err)
	}
	return resp.StatusCode(), nil
}
