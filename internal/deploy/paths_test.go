package deploy

import (
	"testing"
)

func TestRemotePathsAreDeterministic(t *testing.T) {
	if got := InstallRoot("lightningStrikes"); got != "/opt/lightningStrikes" {
		t.Errorf("unexpected install root: %s", got)
	}

	if got := RunnerPath("lightningStrikes"); got != "/opt/lightningStrikes/run_script.sh" {
		t.Errorf("unexpected runner path: %s", got)
	}

	if got := SecretsPath("lightningStrikes"); got != "/opt/lightningStrikes/.env" {
		t.Errorf("unexpected secrets path: %s", got)
	}

	if got := LogsPath("lightningStrikes"); got != "/opt/lightningStrikes/logs" {
		t.Errorf("unexpected logs path: %s", got)
	}
}
