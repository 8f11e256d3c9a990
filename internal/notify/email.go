// Package notify sends the quote summary email over SES. Delivery is best
// effort; the caller logs failures and moves on.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"quote-engine/internal/common/logger"
	"quote-engine/internal/models"
)

// EmailAPI is the SES surface used by the notifier, satisfied by the real
// client and by test fakes.
type EmailAPI interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// EmailNotifier renders and sends quote summaries.
type EmailNotifier struct {
	api       EmailAPI
	fromEmail string
	logger    logger.Logger
}

func NewEmailNotifier(api EmailAPI, fromEmail string, log logger.Logger) *EmailNotifier {
	return &EmailNotifier{
		api:       api,
		fromEmail: fromEmail,
		logger:    log.With(map[string]interface{}{"component": "notify"}),
	}
}

// SendQuote emails the breakdown to the customer.
func (n *EmailNotifier) SendQuote(ctx context.Context, to string, breakdown *models.QuoteBreakdown) error {
	subject := fmt.Sprintf("Tu presupuesto de montaje: %s €", breakdown.Total.StringFixed(2))
	body := renderBody(breakdown)

	_, err := n.api.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
			},
		},
	})
	if err != nil {
		return err
	}

	n.logger.Info("quote email sent", map[string]interface{}{
		"quote_id": breakdown.QuoteID,
	})
	return nil
}

func renderBody(b *models.QuoteBreakdown) string {
	var sb strings.Builder

	sb.WriteString("Hola,\n\nEste es tu presupuesto de montaje:\n\n")
	for _, li := range b.LineItems {
		fmt.Fprintf(&sb, "  - %s x%d: %s €\n", li.DisplayName, li.Quantity, li.Subtotal.StringFixed(2))
	}
	for _, ex := range b.ExtraDetails {
		fmt.Fprintf(&sb, "  - %s: %s €\n", ex.Description, ex.Amount.StringFixed(2))
	}
	if !b.TravelCost.IsZero() {
		fmt.Fprintf(&sb, "  - Desplazamiento (%s): %s €\n", b.DistanceLabel, b.TravelCost.StringFixed(2))
	}
	if b.RequiresAnchoring {
		fmt.Fprintf(&sb, "  - Anclaje a pared: %s €\n", b.AnchoringFee.StringFixed(2))
	}
	fmt.Fprintf(&sb, "\nTotal: %s €\n", b.Total.StringFixed(2))
	fmt.Fprintf(&sb, "\nReferencia: %s\n", b.QuoteID)
	sb.WriteString("\nEl precio incluye desplazamiento y montaje profesional. ¡Gracias por confiar en nosotros!\n")

	return sb.String()
}
