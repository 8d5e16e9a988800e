package domain

import (
	"errors"
	"sort"
)

type DatePreset string

const (
	DatePresetToday     DatePreset = "today"
	DatePresetYesterday DatePreset = "yesterday"
	DatePresetLast7d    DatePreset = "last_7d"
	DatePresetLast14d   DatePreset = "last_14d"
	DatePresetLast28d   DatePreset = "last_28d"
	DatePresetLast30d   DatePreset = "last_30d"
	DatePresetLast90d   DatePreset = "last_90d"
	DatePresetThisMonth DatePreset = "this_month"
	DatePresetLastMonth DatePreset = "last_month"
	DatePresetLifetime  DatePreset = "lifetime"

	DefaultDatePreset = DatePresetLast30d
)

var ErrInvalidDatePreset = errors.New("invalid date preset")

// Tokens da interface -> valores aceitos pela Graph API.
// lifetime não tem equivalente: o parâmetro é omitido.
var datePresetTable = map[DatePreset]string{
	DatePresetToday:     "today",
	DatePresetYesterday: "yesterday",
	DatePresetLast7d:    "last_7_d",
	DatePresetLast14d:   "last_14_d",
	DatePresetLast28d:   "last_28_d",
	DatePresetLast30d:   "last_30_d",
	DatePresetLast90d:   "last_90_d",
	DatePresetThisMonth: "this_month",
	DatePresetLastMonth: "last_month",
}

// PresetTranslation é o resultado da tradução de um preset da interface.
type PresetTranslation struct {
	Preset         string  `json:"preset"`
	ExternalPreset *string `json:"externalPreset"`
	IsLifetime     bool    `json:"isLifetime"`
}

// TranslateDatePreset traduz um token da interface para o preset externo.
// Tokens desconhecidos seguem sem alteração.
func TranslateDatePreset(preset string) PresetTranslation {
	if DatePreset(preset) == DatePresetLifetime {
		return PresetTranslation{Preset: preset, IsLifetime: true}
	}

	external, ok := datePresetTable[DatePreset(preset)]
	if !ok {
		external = preset
	}

	return PresetTranslation{Preset: preset, ExternalPreset: &external}
}

// ValidateDatePreset é a variante estrita usada pelas rotas que validam a entrada.
func ValidateDatePreset(preset string) error {
	if DatePreset(preset) == DatePresetLifetime {
		return nil
	}
	if _, ok := datePresetTable[DatePreset(preset)]; !ok {
		return ErrInvalidDatePreset
	}
	return nil
}

// ResolveDatePreset aplica o preset padrão quando nada foi informado.
func ResolveDatePreset(preset string) string {
	if preset == "" {
		return string(DefaultDatePreset)
	}
	return preset
}

// SupportedDatePresets lista os tokens aceitos, em ordem alfabética.
func SupportedDatePresets() []string {
	presets := make([]string, 0, len(datePresetTable)+1)
	for preset := range datePresetTable {
		presets = append(presets, string(preset))
	}
	presets = append(presets, string(DatePresetLifetime))
	sort.Strings(presets)
	return presets
}
