package display

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows/registry"
)

const perMonitorSettings = `Control Panel\Desktop\PerMonitorSettings`

// registryDPIStore writes DpiValue under an existing PerMonitorSettings
// subkey.
type registryDPIStore struct{}

func (registryDPIStore) PersistDPI(fragment string, dpi uint32) error {
	base, err := registry.OpenKey(registry.CURRENT_USER, perMonitorSettings, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return fmt.Errorf("open PerMonitorSettings: %w", err)
	}
	subkeys, err := base.ReadSubKeyNames(-1)
	base.Close()
	if err != nil {
		return fmt.Errorf("enumerate PerMonitorSettings: %w", err)
	}

	var match string
	for _, name := range subkeys {
		if strings.Contains(strings.ToLower(name), fragment) {
			match = name
			break
		}
	}
	if match == "" {
		return errNoDPIKey
	}

	key, err := registry.OpenKey(registry.CURRENT_USER, perMonitorSettings+`\`+match, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open %s: %w", match, err)
	}
	defer key.Close()

	if err := key.SetDWordValue("DpiValue", dpi); err != nil {
		return fmt.Errorf("write DpiValue: %w", err)
	}
	logrus.WithFields(logrus.Fields{"key": match, "dpi": dpi}).Debugln("persisted DpiValue")
	return nil
}
