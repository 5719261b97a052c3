package model

// OptionsTable is the site options table name, without the site prefix
const OptionsTable = "options"

// TaxClassesOption holds the newline separated list of configured tax class labels
const TaxClassesOption = "woocommerce_tax_classes"

// DefaultCountryOption holds the shop base location, e.g. "FR" or "US:CA"
const DefaultCountryOption = "woocommerce_default_country"

// Option is a single key-value site setting
type Option struct {
	ID       uint   `gorm:"column:option_id;primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"column:option_name;type:varchar(191);not null;uniqueIndex" json:"name"`
	Value    string `gorm:"column:option_value;type:text;not null;default:''" json:"value"`
	Autoload string `gorm:"column:autoload;type:varchar(20);not null;default:'yes'" json:"autoload"`
}
