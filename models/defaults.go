package models

import "time"

// Compiled-in content used when the backend has no row for a singleton and to
// seed a fresh local snapshot.

func DefaultSettings() SiteSettings {
	return SiteSettings{
		HeroHeadline:    "Encontre seu imóvel ideal em Maceió e fale direto com um corretor",
		HeroSubheadline: "Casas e apartamentos em Maceió – AL com atendimento rápido pelo WhatsApp",
		ContactWhatsapp: "5582999999999",
	}
}

func DefaultFinanciamento() FinanciamentoSettings {
	return FinanciamentoSettings{
		ID:            SingletonID,
		Titulo:        "A solução completa para o seu financiamento",
		Descricao:     "Opções flexíveis para realizar seu sonho com tranquilidade.",
		TextoDestaque: "Financiamento residencial ou comercial • Até 90% do valor do imóvel • Prazo de até 360 meses • Melhores taxas do mercado",
		Imagem:        "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?auto=format&fit=crop&q=80&w=800",
		Ativo:         true,
	}
}

func DefaultProvaSocial() ProvaSocial {
	return ProvaSocial{
		ID:        SingletonID,
		Titulo:    "Estamos em Maceió para fazer história",
		Subtitulo: "Ajudamos centenas de famílias a encontrarem o lugar perfeito para viver em Alagoas.",
		Imagens: []string{
			"https://images.unsplash.com/photo-1511895426328-dc8714191300?auto=format&fit=crop&q=80&w=800",
			"https://images.unsplash.com/photo-1506863530036-1efeddceb993?auto=format&fit=crop&q=80&w=600",
			"https://images.unsplash.com/photo-1491438590914-bc09fcaaf77a?auto=format&fit=crop&q=80&w=600",
		},
		Metricas: []Metrica{
			{Label: "famílias atendidas", Valor: 80},
			{Label: "casas financiadas e vendidas", Valor: 33},
			{Label: "imóveis alugados", Valor: 56},
			{Label: "anos realizando sonhos", Valor: 5},
		},
		Ativo: true,
	}
}

func DefaultLocalizacao() LocalizacaoSettings {
	return LocalizacaoSettings{
		ID:          SingletonID,
		Headline:    "Onde estamos localizados",
		Subheadline: "Atendimento presencial em Maceió para oferecer o melhor suporte em cada etapa do seu imóvel.",
		Endereco:    "📍 Av. Hamilton de Barros Soutinho, Jatiúca – Maceió / AL",
		Latitude:    -9.6465,
		Longitude:   -35.7028,
		Ativo:       true,
	}
}

func DefaultRegioes() []Regiao {
	return []Regiao{
		{ID: "1", Nome: "Ponta Verde", Cidade: "Maceió", Estado: "AL", Imagem: "https://images.unsplash.com/photo-1590579491624-f98f36d4c763?auto=format&fit=crop&q=80&w=600", Destaque: true, Ativo: true},
		{ID: "2", Nome: "Jatiúca", Cidade: "Maceió", Estado: "AL", Imagem: "https://images.unsplash.com/photo-1542314831-068cd1dbfeeb?auto=format&fit=crop&q=80&w=600", Destaque: true, Ativo: true},
		{ID: "3", Nome: "Pajuçara", Cidade: "Maceió", Estado: "AL", Imagem: "https://images.unsplash.com/photo-1582650625119-3a31f8fa2699?auto=format&fit=crop&q=80&w=600", Destaque: true, Ativo: true},
		{ID: "4", Nome: "Cruz das Almas", Cidade: "Maceió", Estado: "AL", Imagem: "https://images.unsplash.com/photo-1512917774080-9991f1c4c750?auto=format&fit=crop&q=80&w=600", Destaque: true, Ativo: true},
	}
}

func DefaultImoveis(now time.Time) []Imovel {
	return []Imovel{
		{
			ID:                "1",
			Titulo:            "Edifício Infinity Coast - Beira Mar",
			DescricaoCurta:    "Luxuoso apartamento na orla de Ponta Verde com vista definitiva.",
			DescricaoCompleta: "Experimente o ápice do luxo em Maceió. Este apartamento no Infinity Coast oferece uma vista panorâmica definitiva para o mar da Ponta Verde. Com acabamentos de altíssimo padrão, amplas suítes e uma área de lazer completa que parece um resort privativo, é a escolha ideal para quem não abre mão do melhor.",
			TipoImovel:        TipoApartamento,
			Finalidade:        FinalidadeVenda,
			RegiaoID:          "1",
			Preco:             1850000,
			ValorCondominio:   1200,
			ValorIPTU:         450,
			Quartos:           4,
			Banheiros:         4,
			Vagas:             3,
			Area:              210,
			Cidade:            "Maceió",
			Bairro:            "Ponta Verde",
			Status:            StatusDisponivel,
			Destaque:          true,
			Lancamento:        true,
			Referencia:        "PR-INF-01",
			Imagens: []string{
				"https://images.unsplash.com/photo-1512917774080-9991f1c4c750?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1484154218962-a197022b5858?auto=format&fit=crop&q=80&w=800",
			},
			AreasPrivativas: []string{"Varanda Gourmet", "Suíte Master", "Dependência Completa"},
			AreasComuns:     []string{"Piscina com Raia", "Academia de Última Geração", "Espaço Gourmet", "Segurança 24h"},
			Diferenciais:    []string{"Automação Residencial", "Piso em Porcelanato 120x120", "Vidros Acústicos"},
			DataCriacao:     now,
			Ativo:           true,
		},
		{
			ID:                "2",
			Titulo:            "RN Studio Premium - Cruz das Almas",
			DescricaoCurta:    "Studios modernos ideais para investimento ou moradia ágil.",
			DescricaoCompleta: "Localizado na crescente região de Cruz das Almas, o RN Studio Premium é o empreendimento perfeito para investidores focados em aluguéis de curta temporada ou profissionais que buscam praticidade. Próximo ao Parque Shopping e à praia, oferece uma localização privilegiada com rentabilidade garantida.",
			TipoImovel:        TipoStudio,
			Finalidade:        FinalidadeVenda,
			RegiaoID:          "4",
			Preco:             486000,
			ValorCondominio:   350,
			ValorIPTU:         120,
			Quartos:           1,
			Banheiros:         1,
			Vagas:             1,
			Area:              32,
			Cidade:            "Maceió",
			Bairro:            "Cruz das Almas",
			Status:            StatusDisponivel,
			Destaque:          true,
			Referencia:        "ST-RN-44",
			Imagens: []string{
				"https://images.unsplash.com/photo-1493663284031-b7e3aefcae8e?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1502672023488-70e25813efdf?auto=format&fit=crop&q=80&w=800",
			},
			AreasPrivativas: []string{"Fechadura Eletrônica", "Infraestrutura para Split"},
			AreasComuns:     []string{"Rooftop com Piscina", "Coworking", "Lavanderia Coletiva", "Bicicletário"},
			Diferenciais:    []string{"Alta Liquidez", "Próximo ao Shopping", "Portaria Inteligente"},
			DataCriacao:     now,
			Ativo:           true,
		},
	}
}

func DefaultBannersPromo() []Banner {
	return []Banner{{
		ID:            "p1",
		Titulo:        "Ofertas Exclusivas",
		ImagemDesktop: "https://images.unsplash.com/photo-1582407947304-fd86f028f716?auto=format&fit=crop&q=80&w=1920&h=400",
		ImagemMobile:  "https://images.unsplash.com/photo-1582407947304-fd86f028f716?auto=format&fit=crop&q=80&w=600&h=800",
		TextoAlt:      "Ofertas Imobiliárias Maceió",
		Ativo:         true,
		Ordem:         1,
	}}
}

func DefaultBannersEmBreve() []Banner {
	return []Banner{{
		ID:            "eb1",
		Titulo:        "Novo Lançamento na Jatiúca",
		ImagemDesktop: "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?auto=format&fit=crop&q=80&w=1920&h=400",
		ImagemMobile:  "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?auto=format&fit=crop&q=80&w=600&h=800",
		TextoAlt:      "Em Breve Maceió",
		Ativo:         true,
		Ordem:         1,
	}}
}

// SeedState is the first-run content of a local snapshot.
func SeedState(now time.Time) AppState {
	return AppState{
		Imoveis:             DefaultImoveis(now),
		Regioes:             DefaultRegioes(),
		Leads:               []Lead{},
		BannersPromocionais: DefaultBannersPromo(),
		BannersEmBreve:      DefaultBannersEmBreve(),
		Settings:            DefaultSettings(),
		Financiamento:       DefaultFinanciamento(),
		ProvaSocial:         DefaultProvaSocial(),
		Localizacao:         DefaultLocalizacao(),
	}
}
