package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"mercato_back_end/internal/models"
)

// SendLowStockAlert prévient l'admin quand un produit passe sous son seuil.
// Best effort : sans configuration SMTP, on journalise et on continue.
func SendLowStockAlert(product models.Product) error {
	to := os.Getenv("ALERT_EMAIL")
	smtpHost := os.Getenv("SMTP_HOST")
	if to == "" || smtpHost == "" {
		log.Printf("⚠️ Alerte stock bas non envoyée (SMTP non configuré) : %s, stock %d",
			product.Name, product.Stock)
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From("noreply@mercato.shop"); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("⚠️ Stock bas : %s", product.Name))
	msg.SetBodyString(mail.TypeTextHTML, lowStockHTML(product))

	client, err := mail.NewClient(smtpHost,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'alerte stock bas à", to)
	return client.DialAndSend(msg)
}

func lowStockHTML(product models.Product) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
  <body>
    <h2>Alerte stock bas</h2>
    <p>Le produit <strong>%s</strong> est passé sous son seuil d'alerte.</p>
    <table border="1" cellpadding="6">
      <tr><td>Stock actuel</td><td>%d</td></tr>
      <tr><td>Seuil</td><td>%d</td></tr>
    </table>
    <p>Pensez à réapprovisionner.</p>
  </body>
</html>`, product.Name, product.Stock, product.LowStockThreshold)
}
