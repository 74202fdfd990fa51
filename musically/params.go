package musically

// Params is an insertion-ordered set of query parameters. Order matters:
// the canonical string the signer receives must be reproducible, and keys
// outside the fixed ordering list are serialized in the order they were
// first set (a plain map would randomize them).
type Params struct {
	keys   []string
	values map[string]string
}

// NewParams returns an empty parameter set.
func NewParams() Params {
	return Params{values: make(map[string]string)}
}

// Set stores a value, overwriting any previous value for the key while
// keeping the key's original position.
func (p *Params) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// SetDefault stores a value only when the key is absent.
func (p *Params) SetDefault(key, value string) {
	if _, ok := p.values[key]; ok {
		return
	}
	p.Set(key, value)
}

// Get returns the value for key and whether it is present. Empty-string
// values are present.
func (p Params) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (p Params) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Len returns the number of parameters.
func (p Params) Len() int {
	return len(p.keys)
}

// Clone returns an independent copy. Mutating the clone never affects the
// original.
func (p Params) Clone() Params {
	c := Params{
		keys:   append([]string(nil), p.keys...),
		values: make(map[string]string, len(p.values)),
	}
	for k, v := range p.values {
		c.values[k] = v
	}
	return c
}

// withListingDefaults returns a copy of p with pagination defaults filled
// in for any key the caller did not supply. The input is never mutated.
func withListingDefaults(p Params) Params {
	merged := p.Clone()
	merged.SetDefault("cursor", "0")
	merged.SetDefault("count", "20")
	return merged
}

// StaticRequestParams holds the device and app identity fields attached to
// every request as baseline query parameters. The set is fixed at client
// construction and never mutated afterwards.
//
// Field names mirror the query keys the app sends; empty fields are
// omitted from the request.
type StaticRequestParams struct {
	DeviceID            string // device_id
	InstallID           string // iid
	OpenUDID            string // openudid
	CDID                string // cdid
	DeviceType          string // device_type, e.g. "Pixel"
	DeviceBrand         string // device_brand
	DevicePlatform      string // device_platform, "android"
	OSAPI               string // os_api
	OSVersion           string // os_version
	Resolution          string // resolution, e.g. "1080*1920"
	DPI                 string // dpi
	AC                  string // ac, network access type
	MCC                 string // mcc, carrier country code
	MNC                 string // mnc, carrier network code
	Carrier             string // carrier
	AppName             string // app_name, "musical_ly"
	AID                 string // aid, "1233"
	VersionName         string // version_name
	VersionCode         string // version_code
	BuildNumber         string // build_number
	ManifestVersionCode string // manifest_version_code
	UpdateVersionCode   string // update_version_code
	Channel             string // channel, "googleplay"
	AppLanguage         string // app_language
	Language            string // language
	Region              string // region
	SysRegion           string // sys_region
	OpRegion            string // op_region
	TimezoneName        string // timezone_name
	TimezoneOffset      string // timezone_offset
	SSMix               string // ssmix, "a"
	AppType             string // app_type, "normal"
	IsPad               string // is_pad, "0"
	Fingerprint         string // fp
}

// baseParams converts the static fields to an ordered parameter set.
func (s StaticRequestParams) baseParams() Params {
	p := NewParams()
	for _, kv := range [...][2]string{
		{"device_id", s.DeviceID},
		{"iid", s.InstallID},
		{"openudid", s.OpenUDID},
		{"cdid", s.CDID},
		{"device_type", s.DeviceType},
		{"device_brand", s.DeviceBrand},
		{"device_platform", s.DevicePlatform},
		{"os_api", s.OSAPI},
		{"os_version", s.OSVersion},
		{"resolution", s.Resolution},
		{"dpi", s.DPI},
		{"ac", s.AC},
		{"mcc", s.MCC},
		{"mnc", s.MNC},
		{"carrier", s.Carrier},
		{"app_name", s.AppName},
		{"aid", s.AID},
		{"version_name", s.VersionName},
		{"version_code", s.VersionCode},
		{"build_number", s.BuildNumber},
		{"manifest_version_code", s.ManifestVersionCode},
		{"update_version_code", s.UpdateVersionCode},
		{"channel", s.Channel},
		{"app_language", s.AppLanguage},
		{"language", s.Language},
		{"region", s.Region},
		{"sys_region", s.SysRegion},
		{"op_region", s.OpRegion},
		{"timezone_name", s.TimezoneName},
		{"timezone_offset", s.TimezoneOffset},
		{"ssmix", s.SSMix},
		{"app_type", s.AppType},
		{"is_pad", s.IsPad},
		{"fp", s.Fingerprint},
	} {
		if kv[1] != "" {
			p.Set(kv[0], kv[1])
		}
	}
	return p
}
