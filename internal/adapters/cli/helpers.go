package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/andrescamacho/farmchain-go/internal/infrastructure/config"
)

const defaultEngineURL = "http://localhost:8880"

// resolveFarmID resolves the farm to operate on from flags or defaults
// Priority: --farm flag > user config default
// Returns error only if no farm can be identified from any source
func resolveFarmID() (uint64, error) {
	if farmID > 0 {
		return farmID, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return 0, fmt.Errorf("no farm specified and failed to load user config: %w", err)
	}

	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return 0, fmt.Errorf("no farm specified and failed to load user config: %w", err)
	}

	if userCfg.DefaultFarmID != nil {
		return *userCfg.DefaultFarmID, nil
	}

	return 0, fmt.Errorf("no farm specified: use --farm, or set a default with 'farmctl config set-farm'")
}

// resolveEngineURL resolves the engine base URL from flags or defaults
// Priority: --engine flag > FARMCHAIN_ENGINE env > user config > built-in default
func resolveEngineURL() string {
	if engineURL != "" {
		return engineURL
	}
	if url := os.Getenv("FARMCHAIN_ENGINE"); url != "" {
		return url
	}

	if handler, err := config.NewUserConfigHandler(); err == nil {
		if userCfg, err := handler.Load(); err == nil && userCfg.EngineURL != "" {
			return userCfg.EngineURL
		}
	}

	return defaultEngineURL
}

// prettyPrint formats JSON for display
func prettyPrint(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(bytes)
}
