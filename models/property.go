package models

import "time"

type TipoImovel string

const (
	TipoCasa        TipoImovel = "CASA"
	TipoApartamento TipoImovel = "APARTAMENTO"
	TipoComercial   TipoImovel = "COMERCIAL"
	TipoTerreno     TipoImovel = "TERRENO"
	TipoStudio      TipoImovel = "STUDIO"
	TipoSobrado     TipoImovel = "SOBRADO"
)

type Finalidade string

const (
	FinalidadeVenda   Finalidade = "VENDA"
	FinalidadeAluguel Finalidade = "ALUGUEL"
)

type ImovelStatus string

const (
	StatusDisponivel   ImovelStatus = "DISPONÍVEL"
	StatusNovo         ImovelStatus = "NOVO"
	StatusLancamento   ImovelStatus = "LANÇAMENTO"
	StatusIndisponivel ImovelStatus = "INDISPONÍVEL"
	StatusEmBreve      ImovelStatus = "EM BREVE"
	StatusReservado    ImovelStatus = "RESERVADO"
	StatusVendido      ImovelStatus = "VENDIDO"
	StatusAlugado      ImovelStatus = "ALUGADO"
)

// Imovel is a property listing. RegiaoID may be empty or point to a region
// that no longer exists; consumers must tolerate both.
type Imovel struct {
	ID                string       `json:"id"`
	Titulo            string       `json:"titulo" validate:"required"`
	DescricaoCurta    string       `json:"descricao_curta"`
	DescricaoCompleta string       `json:"descricao_completa"`
	TipoImovel        TipoImovel   `json:"tipoImovel" validate:"required,oneof=CASA APARTAMENTO COMERCIAL TERRENO STUDIO SOBRADO"`
	Finalidade        Finalidade   `json:"finalidade" validate:"required,oneof=VENDA ALUGUEL"`
	RegiaoID          string       `json:"regiao_id"`
	Preco             float64      `json:"preco" validate:"gte=0"`
	ValorCondominio   float64      `json:"valor_condominio,omitempty" validate:"gte=0"`
	ValorIPTU         float64      `json:"valor_iptu,omitempty" validate:"gte=0"`
	Quartos           int          `json:"quartos" validate:"gte=0"`
	Banheiros         int          `json:"banheiros" validate:"gte=0"`
	Vagas             int          `json:"vagas" validate:"gte=0"`
	Area              float64      `json:"area" validate:"gte=0"`
	Cidade            string       `json:"cidade"`
	Bairro            string       `json:"bairro"`
	Status            ImovelStatus `json:"status" validate:"required"`
	Destaque          bool         `json:"destaque"`
	Lancamento        bool         `json:"lancamento"`
	Referencia        string       `json:"referencia"`
	Imagens           []string     `json:"imagens"`
	AreasPrivativas   []string     `json:"areas_privativas"`
	AreasComuns       []string     `json:"areas_comuns"`
	Diferenciais      []string     `json:"diferenciais"`
	DataCriacao       time.Time    `json:"dataCriacao"`
	Ativo             bool         `json:"ativo"`
}

// CoverImage returns the first image or "" when the listing has none.
func (i Imovel) CoverImage() string {
	if len(i.Imagens) == 0 {
		return ""
	}
	return i.Imagens[0]
}

// Unavailable reports whether the listing can no longer be closed.
func (i Imovel) Unavailable() bool {
	switch i.Status {
	case StatusIndisponivel, StatusVendido, StatusAlugado:
		return true
	}
	return false
}
