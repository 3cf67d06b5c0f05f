package controllers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcode-github/imobiliaria/backend/models"
)

func TestParsePropertyFilter(t *testing.T) {
	q := url.Values{
		"q":          {"  Ponta Verde "},
		"tipo":       {"apartamento"},
		"finalidade": {"venda"},
		"regiao":     {"1"},
		"precoMax":   {"2000000"},
		"quartosMin": {"3"},
		"destaque":   {"TRUE"},
		"page":       {"2"},
	}

	assert.Equal(t, models.PropertyFilter{
		Search:       "Ponta Verde",
		Tipo:         models.TipoApartamento,
		Finalidade:   models.FinalidadeVenda,
		RegiaoID:     "1",
		PrecoMax:     2000000,
		QuartosMin:   3,
		DestaqueOnly: true,
	}, ParsePropertyFilter(q))
}

func TestParsePropertyFilterIgnoresBadValues(t *testing.T) {
	f := ParsePropertyFilter(url.Values{
		"precoMax":   {"barato"},
		"quartosMin": {"muitos"},
		"destaque":   {"talvez"},
		"tipo":       {""},
	})
	assert.Equal(t, models.PropertyFilter{}, f)
}

func TestValidationMessage(t *testing.T) {
	err := validate.Struct(models.Regiao{Nome: "x", Estado: "ALA"})
	assert.Equal(t, "Invalid fields: Cidade, Estado", validationMessage(err))
	assert.Equal(t, "Invalid request payload", validationMessage(assert.AnError))
}
