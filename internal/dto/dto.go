// Package dto holds the request shapes accepted by the services, with
// go-playground/validator tags checked before any state is touched.
package dto

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags
	// like min=0, gt=0, required work without panicking
	// ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// Validate runs the struct tags and flattens failures into a
// field → failed-tag map for operator display.
func Validate(req interface{}) (map[string]string, bool) {
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		return fields, false
	}
	return nil, true
}

type LoginRequest struct {
	Login string `json:"login" validate:"required,numeric"`
	Senha string `json:"senha" validate:"required,numeric,min=4"`
}

type AbrirCaixaRequest struct {
	RestauranteID string          `json:"restaurante_id" validate:"required"`
	AbertoPor     string          `json:"aberto_por"     validate:"required"`
	SaldoInicial  decimal.Decimal `json:"saldo_inicial"  validate:"min=0"`
}

type ReforcoRequest struct {
	SessaoCaixaID string          `json:"sessao_caixa_id" validate:"required,uuid"`
	Valor         decimal.Decimal `json:"valor"           validate:"required,gt=0"`
	Motivo        string          `json:"motivo"          validate:"required,min=3"`
	AdicionadoPor string          `json:"adicionado_por"  validate:"required"`
}

type FecharCaixaRequest struct {
	SessaoCaixaID   string          `json:"sessao_caixa_id"  validate:"required,uuid"`
	SaldoFechamento decimal.Decimal `json:"saldo_fechamento" validate:"min=0"`
}

type EntrarFilaRequest struct {
	RestauranteID string `json:"restaurante_id" validate:"required"`
	Nome          string `json:"nome"           validate:"required,min=2"`
	Telefone      string `json:"telefone"       validate:"required,min=8"`
	Pessoas       int    `json:"pessoas"        validate:"required,min=1,max=40"`
}
