package utils

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson indenta o valor para logs de diagnóstico. []byte é tratado como
// JSON já serializado.
func PrettyJson(in any) string {
	if raw, ok := in.([]byte); ok {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			log.L.WithError(err).Debug("PrettyJson: conteúdo não é JSON")
			return string(raw)
		}
		in = decoded
	}

	out, err := json.MarshalIndent(in, "", "\t")
	if err != nil {
		log.L.WithError(err).Debug("PrettyJson: falha ao serializar")
		return ""
	}

	return string(out)
}
