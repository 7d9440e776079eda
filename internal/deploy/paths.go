package deploy

import (
	"path"

	"github.com/WB-TFS-SCADA1/deployAutomation/cmd/deployctl/config"
)

// Remote layout per target. All paths are pure functions of the target name.

func InstallRoot(targetName string) string {
	return path.Join(config.Config.InstallPrefix, targetName)
}

func RunnerPath(targetName string) string {
	return path.Join(InstallRoot(targetName), config.Config.RunnerScriptName)
}

func SecretsPath(targetName string) string {
	return path.Join(InstallRoot(targetName), config.Config.SecretsFileName)
}

func LogsPath(targetName string) string {
	return path.Join(InstallRoot(targetName), config.Config.LogsDirName)
}
