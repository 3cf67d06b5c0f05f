package models

import "fmt"

type BannerGroup string

const (
	BannerPromo   BannerGroup = "PROMO"
	BannerEmBreve BannerGroup = "EMBREVE"
)

// ParseBannerGroup accepts the stored tag as well as the URL-friendly aliases
// used by the admin routes.
func ParseBannerGroup(s string) (BannerGroup, error) {
	switch s {
	case "PROMO", "promo", "promocionais":
		return BannerPromo, nil
	case "EMBREVE", "COMING_SOON", "em-breve", "embreve":
		return BannerEmBreve, nil
	}
	return "", fmt.Errorf("unknown banner group %q", s)
}

// Banner order within a group is the slice order. Ordem is carried along but
// never used as a sort key here.
type Banner struct {
	ID            string `json:"id"`
	Titulo        string `json:"titulo,omitempty"`
	ImagemDesktop string `json:"imagem_desktop"`
	ImagemMobile  string `json:"imagem_mobile"`
	LinkAcao      string `json:"link_acao,omitempty"`
	TextoAlt      string `json:"texto_alt"`
	Ativo         bool   `json:"ativo"`
	Ordem         int    `json:"ordem"`
}

func ActiveBanners(banners []Banner) []Banner {
	out := make([]Banner, 0, len(banners))
	for _, b := range banners {
		if b.Ativo {
			out = append(out, b)
		}
	}
	return out
}
