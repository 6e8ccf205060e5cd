package dto

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"cardapio-digital/pkg/money"
	"cardapio-digital/pkg/utils"
)

// Form keys accepted by the admin mutations
const (
	FormName           = "name"
	FormImage          = "image"
	FormDescription    = "description"
	FormPrice          = "price"
	FormHalfPrice      = "halfPrice"
	FormCategoryID     = "categoryId"
	FormInPromotion    = "promotion[inPromotion]"
	FormPromotionPrice = "promotion[promotionPrice]"
)

const MsgPromotionAbovePrice = "O preço da promoção não pode ser maior que o preço original."

var (
	categoryFormKeys = map[string]bool{FormName: true, FormImage: true}
	menuItemFormKeys = map[string]bool{
		FormName: true, FormImage: true, FormDescription: true, FormPrice: true,
		FormHalfPrice: true, FormCategoryID: true, FormInPromotion: true, FormPromotionPrice: true,
	}
)

// FormError is a validation failure at the mutation boundary; nothing is persisted
type FormError struct {
	Message string
	Fields  map[string]string
}

func (e *FormError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return e.Message + ": " + strings.Join(keys, ", ")
}

func newFormError(fields map[string]string) *FormError {
	return &FormError{Message: "Dados inválidos", Fields: fields}
}

type CategoryForm struct {
	Name  string `form:"name" validate:"required,max=100"`
	Image string `form:"image" validate:"omitempty,url"`
}

type MenuItemForm struct {
	Name           string      `form:"name" validate:"required,max=100"`
	Description    string      `form:"description" validate:"required,max=500"`
	Price          money.Cents `form:"price" validate:"gt=0"`
	HalfPrice      money.Cents `form:"halfPrice" validate:"gte=0"`
	Image          string      `form:"image" validate:"omitempty,url"`
	CategoryID     string      `form:"categoryId" validate:"required"`
	InPromotion    bool        `form:"promotion[inPromotion]"`
	PromotionPrice money.Cents `form:"promotion[promotionPrice]" validate:"required_if=InPromotion true,gte=0,ltefield=Price"`
}

func ParseCategoryForm(values url.Values) (*CategoryForm, error) {
	fields := rejectUnknown(values, categoryFormKeys)

	form := &CategoryForm{
		Name:  strings.TrimSpace(values.Get(FormName)),
		Image: strings.TrimSpace(values.Get(FormImage)),
	}
	if err := validateForm(form, fields); err != nil {
		return nil, err
	}
	return form, nil
}

func ParseMenuItemForm(values url.Values) (*MenuItemForm, error) {
	fields := rejectUnknown(values, menuItemFormKeys)

	form := &MenuItemForm{
		Name:        strings.TrimSpace(values.Get(FormName)),
		Description: strings.TrimSpace(values.Get(FormDescription)),
		Image:       strings.TrimSpace(values.Get(FormImage)),
		CategoryID:  strings.TrimSpace(values.Get(FormCategoryID)),
	}

	form.Price = parsePrice(values, FormPrice, true, fields)
	form.HalfPrice = parsePrice(values, FormHalfPrice, false, fields)

	if raw := strings.TrimSpace(values.Get(FormInPromotion)); raw != "" {
		inPromotion, err := strconv.ParseBool(raw)
		if err != nil {
			fields[FormInPromotion] = "Valor inválido, use true ou false"
		}
		form.InPromotion = inPromotion
	}

	// a stale promotion price is ignored when the promotion is off
	if form.InPromotion {
		form.PromotionPrice = parsePrice(values, FormPromotionPrice, false, fields)
	}

	if err := validateForm(form, fields); err != nil {
		return nil, err
	}
	return form, nil
}

func rejectUnknown(values url.Values, allowed map[string]bool) map[string]string {
	fields := map[string]string{}
	for key := range values {
		if !allowed[key] {
			fields[key] = "Campo não permitido"
		}
	}
	return fields
}

func parsePrice(values url.Values, key string, required bool, fields map[string]string) money.Cents {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		if required {
			fields[key] = key + " é obrigatório"
		}
		return 0
	}
	cents, err := money.ParseCents(raw)
	if err != nil {
		fields[key] = "Valor inválido"
		return 0
	}
	return cents
}

func validateForm(form any, fields map[string]string) error {
	if err := utils.ValidateStruct(form); err != nil {
		for key, msg := range utils.GetValidationErrors(err) {
			if _, seen := fields[key]; seen {
				continue
			}
			if key == FormPromotionPrice && strings.Contains(msg, "não pode ser maior") {
				msg = MsgPromotionAbovePrice
			}
			fields[key] = msg
		}
	}
	if len(fields) > 0 {
		return newFormError(fields)
	}
	return nil
}

// Validate re-checks a form built outside ParseMenuItemForm
func (f *MenuItemForm) Validate() error {
	return validateForm(f, map[string]string{})
}

func (f *CategoryForm) Validate() error {
	return validateForm(f, map[string]string{})
}

// Values renders the form back to its wire encoding, used by the seed command
func (f *MenuItemForm) Values() url.Values {
	v := url.Values{}
	v.Set(FormName, f.Name)
	v.Set(FormDescription, f.Description)
	v.Set(FormPrice, f.Price.String())
	if f.HalfPrice > 0 {
		v.Set(FormHalfPrice, f.HalfPrice.String())
	}
	if f.Image != "" {
		v.Set(FormImage, f.Image)
	}
	v.Set(FormCategoryID, f.CategoryID)
	v.Set(FormInPromotion, strconv.FormatBool(f.InPromotion))
	if f.InPromotion {
		v.Set(FormPromotionPrice, f.PromotionPrice.String())
	}
	return v
}

func (f *CategoryForm) Values() url.Values {
	v := url.Values{}
	v.Set(FormName, f.Name)
	if f.Image != "" {
		v.Set(FormImage, f.Image)
	}
	return v
}
