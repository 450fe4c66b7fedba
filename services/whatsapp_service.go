package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zaylux/zaylux-store-api/config"
	"github.com/zaylux/zaylux-store-api/utils"
)

// SendResult is the outcome of an outbound WhatsApp send. Sends are
// fire-and-forget: callers inspect the result for logging only and never let
// a failure roll back the order mutation that preceded it.
type SendResult struct {
	Success    bool
	MessageSID string
	Error      string
}

// WhatsAppSender sends outbound order messages over the WhatsApp channel.
type WhatsAppSender interface {
	// SendConfirmationRequest asks the customer to reply YES/NO for a newly
	// placed order.
	SendConfirmationRequest(phone, publicOrderID, customerName string, total float64, language string) SendResult

	// SendStatusMessage informs the customer their order was confirmed or
	// cancelled. status is a confirmation status ("confirmed"/"cancelled").
	SendStatusMessage(phone, publicOrderID, status, language string) SendResult

	// SendGuidance explains the expected reply format. publicOrderID may be
	// empty when no pending order matched the sender.
	SendGuidance(phone, publicOrderID string) SendResult
}

// TwilioWhatsAppService sends messages through the Twilio REST API.
type TwilioWhatsAppService struct {
	accountSID string
	authToken  string
	fromNumber string
	httpClient *http.Client
	log        *zap.Logger
}

// NewTwilioWhatsAppService creates the Twilio-backed sender. Credentials may
// be empty; sends then fail soft with a "not configured" result, matching the
// fire-and-forget contract.
func NewTwilioWhatsAppService(cfg *config.Config) *TwilioWhatsAppService {
	return &TwilioWhatsAppService{
		accountSID: cfg.TwilioAccountSID,
		authToken:  cfg.TwilioAuthToken,
		fromNumber: cfg.TwilioWhatsAppNumber,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        utils.Logger(),
	}
}

// SendConfirmationRequest sends the bilingual "reply YES/NO" message.
func (s *TwilioWhatsAppService) SendConfirmationRequest(phone, publicOrderID, customerName string, total float64, language string) SendResult {
	var body string
	if language == "ar" {
		body = fmt.Sprintf(`مرحباً %s! 🛍️

شكراً لطلبك من Zaylux Store.

رقم الطلب: %s
المبلغ الإجمالي: %.2f ريال

للتأكيد، يرجى الرد بـ:
✅ نعم - لتأكيد الطلب
❌ لا - لإلغاء الطلب

سيتم الدفع عند الاستلام.`, customerName, publicOrderID, total)
	} else {
		body = fmt.Sprintf(`Hello %s! 🛍️

Thank you for your order from Zaylux Store.

Order ID: %s
Total Amount: %.2f SAR

To confirm, please reply with:
✅ YES - to confirm your order
❌ NO - to cancel your order

Payment will be collected on delivery.`, customerName, publicOrderID, total)
	}

	return s.send(phone, body)
}

// SendStatusMessage sends the confirmation outcome message.
func (s *TwilioWhatsAppService) SendStatusMessage(phone, publicOrderID, status, language string) SendResult {
	var body string
	if status == "confirmed" {
		if language == "ar" {
			body = fmt.Sprintf(`✅ تم تأكيد طلبك!

رقم الطلب: %s

سنقوم بتوصيل طلبك قريباً.
شكراً لتسوقك من Zaylux Store! 🎉`, publicOrderID)
		} else {
			body = fmt.Sprintf(`✅ Your order has been confirmed!

Order ID: %s

We will deliver your order soon.
Thank you for shopping with Zaylux Store! 🎉`, publicOrderID)
		}
	} else {
		if language == "ar" {
			body = fmt.Sprintf(`❌ تم إلغاء طلبك.

رقم الطلب: %s

نأمل أن نخدمك في المستقبل.
Zaylux Store`, publicOrderID)
		} else {
			body = fmt.Sprintf(`❌ Your order has been cancelled.

Order ID: %s

We hope to serve you in the future.
Zaylux Store`, publicOrderID)
		}
	}

	return s.send(phone, body)
}

// SendGuidance sends a bilingual hint about the expected reply format.
func (s *TwilioWhatsAppService) SendGuidance(phone, publicOrderID string) SendResult {
	var body string
	if publicOrderID != "" {
		body = fmt.Sprintf(`We didn't understand your reply for order %s.

Please reply with:
✅ YES - to confirm your order
❌ NO - to cancel your order

لم نفهم ردك. يرجى الرد بـ "نعم" للتأكيد أو "لا" للإلغاء.`, publicOrderID)
	} else {
		body = `We couldn't find a pending order for this number.

If you just placed an order, please wait a moment and try again, or contact Zaylux Store support.

لم نجد طلباً قيد الانتظار لهذا الرقم.`
	}

	return s.send(phone, body)
}

// send posts a single message to the Twilio Messages endpoint.
func (s *TwilioWhatsAppService) send(phone, body string) SendResult {
	if s.accountSID == "" || s.authToken == "" {
		return SendResult{Success: false, Error: "Twilio not configured"}
	}
	if s.fromNumber == "" {
		return SendResult{Success: false, Error: "WhatsApp number not configured"}
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.accountSID)
	form := url.Values{}
	form.Set("From", "whatsapp:"+s.fromNumber)
	form.Set("To", FormatForWhatsApp(phone))
	form.Set("Body", body)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return SendResult{Success: false, Error: err.Error()}
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Warn("WhatsApp send failed", zap.Error(err))
		return SendResult{Success: false, Error: err.Error()}
	}
	defer resp.Body.Close()

	var payload struct {
		SID     string `json:"sid"`
		Status  string `json:"status"`
		Message string `json:"message"` // error description on non-2xx
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return SendResult{Success: false, Error: fmt.Sprintf("unexpected Twilio response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.Warn("WhatsApp send rejected",
			zap.Int("status_code", resp.StatusCode),
			zap.String("twilio_message", payload.Message),
		)
		return SendResult{Success: false, Error: payload.Message}
	}

	return SendResult{Success: true, MessageSID: payload.SID}
}
