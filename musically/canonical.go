package musically

import (
	"net/url"
	"strings"
)

// ParamsOrder is the fixed serialization order of known parameter keys.
// Keys in this list always precede unlisted keys in the canonical string,
// in this order; unlisted keys follow in the order they were first set.
//
// The signature is computed over the serialized string, so the same logical
// parameter set must always produce the same bytes.
var ParamsOrder = []string{
	"device_id",
	"iid",
	"openudid",
	"cdid",
	"device_type",
	"device_brand",
	"device_platform",
	"os_api",
	"os_version",
	"resolution",
	"dpi",
	"ac",
	"mcc",
	"mnc",
	"carrier",
	"app_name",
	"aid",
	"version_name",
	"version_code",
	"build_number",
	"manifest_version_code",
	"update_version_code",
	"channel",
	"app_language",
	"language",
	"region",
	"sys_region",
	"op_region",
	"timezone_name",
	"timezone_offset",
	"ssmix",
	"app_type",
	"is_pad",
	"fp",
	"ts",
	"_rticket",
	"user_id",
	"sec_user_id",
	"aweme_id",
	"type",
	"cursor",
	"max_cursor",
	"min_cursor",
	"count",
}

// EncodeParams serializes a parameter set into a query string with the
// fixed key ordering. It is a pure function: the same parameter set always
// yields a byte-identical string. Values are percent-encoded; present keys
// with empty or "0" values are included, absent keys are omitted.
func EncodeParams(p Params) string {
	var b strings.Builder
	listed := make(map[string]bool, len(ParamsOrder))

	write := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}

	for _, key := range ParamsOrder {
		listed[key] = true
		if v, ok := p.Get(key); ok {
			write(key, v)
		}
	}

	for _, key := range p.Keys() {
		if listed[key] {
			continue
		}
		if v, ok := p.Get(key); ok {
			write(key, v)
		}
	}

	return b.String()
}
