package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"

	"github.com/muhammadMilon/FruitPanda-sub001/lib"
	"github.com/muhammadMilon/FruitPanda-sub001/structs"
	"github.com/muhammadMilon/FruitPanda-sub001/structs/tables"
)

var (
	emailClient *resend.Client
	clientOnce  = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendPaymentConfirmation emails the customer after an admin confirms their
// payment. receiptUrl may be empty when the PDF could not be stored; the email
// then links to the order page only.
func (es *EmailService) SendPaymentConfirmation(order *tables.Order, receiptUrl string) error {
	var itemRows strings.Builder
	for _, item := range order.Items {
		itemRows.WriteString(fmt.Sprintf(
			`<tr><td>%s</td><td style="text-align:center;">%d</td><td style="text-align:right;">%s</td></tr>`,
			item.ProductInfo.Name, item.Quantity, lib.FormatBDT(item.Subtotal),
		))
	}

	receiptBlock := ""
	if receiptUrl != "" {
		receiptBlock = fmt.Sprintf(`
				<p style="text-align: center;">
					<a href="%s" class="button">Download Receipt</a>
				</p>`, receiptUrl)
	}

	orderLink := fmt.Sprintf("%s/orders/%s", es.cfg.Server.FrontendURL, order.Id.String())

	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #228B22; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.button { display: inline-block; padding: 15px 30px; background-color: #228B22; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
				table { width: 100%%; border-collapse: collapse; margin: 15px 0; }
				th, td { padding: 8px; border-bottom: 1px solid #ddd; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Payment Confirmed</h1>
				</div>
				<div class="content">
					<p>Hi %s,</p>
					<p>We have received your payment for order <strong>%s</strong>. Your fresh fruit is on its way!</p>
					<table>
						<tr><th style="text-align:left;">Item</th><th>Qty</th><th style="text-align:right;">Amount</th></tr>
						%s
					</table>
					<p style="text-align:right;"><strong>Total: %s</strong></p>
					%s
					<p>You can track your order here: <a href="%s">%s</a></p>
				</div>
				<div class="footer">
					<p>Fruit Panda | %s | %s</p>
				</div>
			</div>
		</body>
		</html>`,
		order.CustomerInfo.Name,
		order.OrderNumber,
		itemRows.String(),
		lib.FormatBDTGrouped(order.Pricing.Total),
		receiptBlock,
		orderLink, orderLink,
		es.cfg.Server.SupportEmail, es.cfg.Server.SupportPhone,
	)

	subject := fmt.Sprintf("Payment confirmed for order %s", order.OrderNumber)
	return es.SendEmail([]string{order.CustomerInfo.Email}, subject, body)
}
