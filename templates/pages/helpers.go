package pages

import (
	"context"
	"strconv"

	"lexium/services"
	"lexium/services/i18n"
	"lexium/templates/components"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
)

func tr(ctx context.Context, key string, args ...map[string]interface{}) string {
	return i18n.T(ctx, key, args...)
}

func text(s string) templ.Component { return components.Text(s) }

func hours(h decimal.Decimal) string { return services.FormatHours(h) }

func money(m decimal.Decimal) string { return services.FormatMoney(m) }

func idPath(base string, id uint, suffix string) string {
	return base + "/" + strconv.FormatUint(uint64(id), 10) + suffix
}

func idString(id uint) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}

func field(form *FormState, name, label string) components.Field {
	return components.Field{
		Name:  name,
		Label: label,
		Value: form.Get(name),
		Error: form.Errors[name],
	}
}

func yesNo(ctx context.Context, v bool) string {
	if v {
		return tr(ctx, "common.yes")
	}
	return tr(ctx, "common.no")
}
