// Package forms decodes and validates browser form input before it is sent
// to the remote API. Validation here only guards the obvious (required
// names, plan values); the server remains the authority and its detail
// messages are surfaced when it rejects a request anyway.
package forms

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type RegisterForm struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=3,max=100"`
	Password string `validate:"required,min=6"`
	FullName string `validate:"max=255"`
}

type CategoryForm struct {
	Name        string `validate:"required,max=100"`
	Description string
}

type ProductForm struct {
	Name          string  `validate:"required,max=255"`
	Description   string
	Price         float64 `validate:"gt=0"`
	StockQuantity int     `validate:"gte=0"`
	MinStock      *int
	CategoryID    *int64
	Barcode       string `validate:"max=50"`
}

type ListForm struct {
	Name        string `validate:"required,max=255"`
	Description string
}

type ItemForm struct {
	Name           string `validate:"required,max=255"`
	Quantity       int    `validate:"gte=1"`
	EstimatedPrice *float64
	Note           string
}

type FinalizeForm struct {
	Store        string `validate:"max=255"`
	Note         string
	AddToStock   bool
	UpdatePrices bool
}

type SubscriptionForm struct {
	Plan string `validate:"required,oneof=mensal anual"`
}

// Quantity parses a quantity field, clamping non-numeric or sub-1 input
// to 1.
func Quantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// optionalFloat parses a price field, treating blank input as absent.
func optionalFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", raw)
	}
	return &v, nil
}

func optionalInt(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", raw)
	}
	return &v, nil
}

func optionalInt64(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q", raw)
	}
	return &v, nil
}

func ParseLogin(values url.Values) (*LoginForm, error) {
	f := &LoginForm{
		Username: strings.TrimSpace(values.Get("username")),
		Password: values.Get("password"),
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("usuário e senha são obrigatórios")
	}
	return f, nil
}

func ParseRegister(values url.Values) (*RegisterForm, error) {
	f := &RegisterForm{
		Email:    strings.TrimSpace(values.Get("email")),
		Username: strings.TrimSpace(values.Get("username")),
		Password: values.Get("password"),
		FullName: strings.TrimSpace(values.Get("full_name")),
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("dados de cadastro inválidos")
	}
	return f, nil
}

func ParseCategory(values url.Values) (*CategoryForm, error) {
	f := &CategoryForm{
		Name:        strings.TrimSpace(values.Get("nome")),
		Description: strings.TrimSpace(values.Get("descricao")),
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("nome da categoria é obrigatório")
	}
	return f, nil
}

func ParseProduct(values url.Values) (*ProductForm, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(values.Get("preco")), 64)
	if err != nil {
		return nil, fmt.Errorf("preço inválido")
	}
	stock := 0
	if raw := strings.TrimSpace(values.Get("quantidade_estoque")); raw != "" {
		stock, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("quantidade em estoque inválida")
		}
	}
	minStock, err := optionalInt(values.Get("estoque_minimo"))
	if err != nil {
		return nil, fmt.Errorf("estoque mínimo inválido")
	}
	categoryID, err := optionalInt64(values.Get("categoria_id"))
	if err != nil {
		return nil, fmt.Errorf("categoria inválida")
	}

	f := &ProductForm{
		Name:          strings.TrimSpace(values.Get("nome")),
		Description:   strings.TrimSpace(values.Get("descricao")),
		Price:         price,
		StockQuantity: stock,
		MinStock:      minStock,
		CategoryID:    categoryID,
		Barcode:       strings.TrimSpace(values.Get("codigo_barras")),
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("dados do produto inválidos")
	}
	return f, nil
}

func ParseList(values url.Values) (*ListForm, error) {
	f := &ListForm{
		Name:        strings.TrimSpace(values.Get("nome")),
		Description: strings.TrimSpace(values.Get("descricao")),
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("nome da lista é obrigatório")
	}
	return f, nil
}

func ParseItem(values url.Values) (*ItemForm, error) {
	price, err := optionalFloat(values.Get("preco_estimado"))
	if err != nil {
		return nil, fmt.Errorf("preço estimado inválido")
	}

	f := &ItemForm{
		Name:           strings.TrimSpace(values.Get("nome_item")),
		Quantity:       Quantity(values.Get("quantidade")),
		EstimatedPrice: price,
		Note:           strings.TrimSpace(values.Get("observacao")),
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("nome do item é obrigatório")
	}
	return f, nil
}

// ParseFinalize reads the finalize dialog. Updating prices is only
// meaningful when items are being added to stock, so the flag is dropped
// otherwise.
func ParseFinalize(values url.Values) (*FinalizeForm, error) {
	f := &FinalizeForm{
		Store:        strings.TrimSpace(values.Get("local_compra")),
		Note:         strings.TrimSpace(values.Get("observacao")),
		AddToStock:   values.Get("adicionar_ao_estoque") == "on",
		UpdatePrices: values.Get("atualizar_precos") == "on",
	}
	if !f.AddToStock {
		f.UpdatePrices = false
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("dados de finalização inválidos")
	}
	return f, nil
}

func ParseSubscription(values url.Values) (*SubscriptionForm, error) {
	f := &SubscriptionForm{
		Plan: strings.TrimSpace(values.Get("plano")),
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("plano inválido")
	}
	return f, nil
}
