package utils

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

const GeneralContactMessage = "Olá! Gostaria de falar com um consultor sobre imóveis em Maceió."

// WhatsAppLink builds a wa.me deep link with a prefilled message. Anything
// that is not a digit is dropped from the number.
func WhatsAppLink(number, message string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)
	link := "https://wa.me/" + digits
	if message != "" {
		link += "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	}
	return link
}

func PropertyInterestMessage(titulo, bairro, referencia string) string {
	return fmt.Sprintf(
		"Olá! Tenho interesse no imóvel %s, localizado em %s, Maceió – AL. Gostaria de mais informações. (Ref: %s)",
		titulo, bairro, referencia,
	)
}
