package musically

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"

	"github.com/google/uuid"
)

// RandomDevice returns a StaticRequestParams with a freshly generated
// device identity (device id, install id, openudid, cdid) and the app
// defaults observed on real devices. The app registers a device before
// first login; callers can overwrite any field before constructing the
// client.
func RandomDevice() StaticRequestParams {
	return StaticRequestParams{
		DeviceID:            randomNumericID(),
		InstallID:           randomNumericID(),
		OpenUDID:            randomOpenUDID(),
		CDID:                uuid.NewString(),
		DeviceType:          "Pixel",
		DeviceBrand:         "Google",
		DevicePlatform:      "android",
		OSAPI:               "23",
		OSVersion:           "6.0.1",
		Resolution:          "1080*1920",
		DPI:                 "420",
		AC:                  "wifi",
		AppName:             "musical_ly",
		AID:                 "1233",
		VersionName:         "9.1.0",
		VersionCode:         "910",
		BuildNumber:         "9.1.0",
		ManifestVersionCode: "2019030832",
		UpdateVersionCode:   "2019030832",
		Channel:             "googleplay",
		AppLanguage:         "en",
		Language:            "en",
		Region:              "US",
		SysRegion:           "US",
		TimezoneName:        "America/New_York",
		TimezoneOffset:      "-14400",
		SSMix:               "a",
		AppType:             "normal",
		IsPad:               "0",
	}
}

// randomNumericID generates a decimal identifier in the shape the app uses
// for device and install ids.
func randomNumericID() string {
	u := uuid.New()
	n := binary.BigEndian.Uint64(u[:8]) >> 1
	return strconv.FormatUint(n, 10)
}

// randomOpenUDID generates the 16-hex-char openudid value.
func randomOpenUDID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:8])
}
