package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/opsmirror/ddexport/internal/constants"
)

func TestWriteEnvFileTemplate(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".env")

	if err := WriteEnvFileTemplate(path, "dev", "us5.datadoghq.com"); err != nil {
		t.Fatalf("WriteEnvFileTemplate failed: %v", err)
	}

	values, err := ReadEnvFile(path)
	if err != nil {
		t.Fatalf("ReadEnvFile failed: %v", err)
	}
	if values[KeySite] != "us5.datadoghq.com" {
		t.Errorf("DD_SITE = %q, want us5.datadoghq.com", values[KeySite])
	}
	if values[KeyAPIKey] != constants.PlaceholderAPIKey {
		t.Errorf("DD_API_KEY = %q, want placeholder", values[KeyAPIKey])
	}
	if values[KeyAppKey] != constants.PlaceholderAppKey {
		t.Errorf("DD_APP_KEY = %q, want placeholder", values[KeyAppKey])
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat failed: %v", err)
		}
		if info.Mode().Perm() != constants.EnvFilePerm {
			t.Errorf("permissions = %o, want %o", info.Mode().Perm(), constants.EnvFilePerm)
		}
	}
}

func TestMergeSiteHost_ReplacesOnlySiteLine(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".env")

	original := "# my credentials\nDD_SITE=datadoghq.com\nDD_API_KEY=abc123\nDD_APP_KEY=def456\n"
	if err := os.WriteFile(path, []byte(original), 0600); err != nil {
		t.Fatal(err)
	}

	if err := MergeSiteHost(path, "us5.datadoghq.com"); err != nil {
		t.Fatalf("MergeSiteHost failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "# my credentials\nDD_SITE=us5.datadoghq.com\nDD_API_KEY=abc123\nDD_APP_KEY=def456\n"
	if string(data) != want {
		t.Errorf("merged file = %q, want %q", string(data), want)
	}
}

func TestMergeSiteHost_AppendsWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".env")

	original := "DD_API_KEY=abc123\nDD_APP_KEY=def456\n"
	if err := os.WriteFile(path, []byte(original), 0600); err != nil {
		t.Fatal(err)
	}

	if err := MergeSiteHost(path, "datadoghq.eu"); err != nil {
		t.Fatalf("MergeSiteHost failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.HasPrefix(content, original[:len(original)-1]) {
		t.Errorf("existing lines were altered: %q", content)
	}
	if strings.Count(content, "DD_SITE=") != 1 {
		t.Errorf("want exactly one DD_SITE line, got: %q", content)
	}
	if !strings.Contains(content, "DD_SITE=datadoghq.eu\n") {
		t.Errorf("appended DD_SITE line missing: %q", content)
	}
}

func TestMergeSiteHost_RejectsDuplicateSiteLines(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".env")

	original := "DD_SITE=datadoghq.com\nDD_SITE=datadoghq.eu\nDD_API_KEY=abc\n"
	if err := os.WriteFile(path, []byte(original), 0600); err != nil {
		t.Fatal(err)
	}

	err := MergeSiteHost(path, "us5.datadoghq.com")
	if !errors.Is(err, ErrMalformedEnvFile) {
		t.Fatalf("want ErrMalformedEnvFile, got %v", err)
	}

	// Reject means the file stays untouched.
	data, _ := os.ReadFile(path)
	if string(data) != original {
		t.Errorf("rejected file was modified: %q", string(data))
	}
}

func TestMergeSiteHost_IgnoresCommentedSiteLines(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".env")

	original := "# DD_SITE=old.example.com\nDD_API_KEY=abc\n"
	if err := os.WriteFile(path, []byte(original), 0600); err != nil {
		t.Fatal(err)
	}

	if err := MergeSiteHost(path, "us3.datadoghq.com"); err != nil {
		t.Fatalf("MergeSiteHost failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	content := string(data)
	if !strings.Contains(content, "# DD_SITE=old.example.com\n") {
		t.Errorf("comment line was altered: %q", content)
	}
	if !strings.Contains(content, "DD_SITE=us3.datadoghq.com") {
		t.Errorf("DD_SITE was not appended: %q", content)
	}
}

func TestMergeEnvValues_UpdatesKeys(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".env")

	original := "DD_SITE=datadoghq.com\nDD_API_KEY=your_api_key_here\nDD_APP_KEY=your_app_key_here\n"
	if err := os.WriteFile(path, []byte(original), 0600); err != nil {
		t.Fatal(err)
	}

	err := MergeEnvValues(path, map[string]string{
		KeyAPIKey: "real-api-key",
		KeyAppKey: "real-app-key",
	})
	if err != nil {
		t.Fatalf("MergeEnvValues failed: %v", err)
	}

	values, err := ReadEnvFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if values[KeyAPIKey] != "real-api-key" {
		t.Errorf("DD_API_KEY = %q, want real-api-key", values[KeyAPIKey])
	}
	if values[KeyAppKey] != "real-app-key" {
		t.Errorf("DD_APP_KEY = %q, want real-app-key", values[KeyAppKey])
	}
	if values[KeySite] != "datadoghq.com" {
		t.Errorf("DD_SITE changed: %q", values[KeySite])
	}
}
