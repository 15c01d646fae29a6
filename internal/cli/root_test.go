package cli

import "testing"

func TestParseKeyValueArgs(t *testing.T) {
	site := "us1"
	base := "datadog-api"
	parseKeyValueArgs([]string{"site=us5", "base= exports ", "bogus", "color=red"}, map[string]*string{
		"site": &site,
		"base": &base,
	})

	if site != "us5" {
		t.Errorf("site = %q, want us5", site)
	}
	if base != "exports" {
		t.Errorf("base = %q, want exports", base)
	}
}

func TestParseKeyValueArgs_KeyCaseInsensitive(t *testing.T) {
	site := "us1"
	parseKeyValueArgs([]string{"SITE=eu1"}, map[string]*string{
		"site": &site,
	})
	if site != "eu1" {
		t.Errorf("site = %q, want eu1", site)
	}
}

func TestParseKeyValueArgs_KeepsDefaultWhenAbsent(t *testing.T) {
	env := "DEV,PROD"
	parseKeyValueArgs([]string{"site=us3"}, map[string]*string{
		"env":  &env,
		"site": new(string),
	})
	if env != "DEV,PROD" {
		t.Errorf("env = %q, want default preserved", env)
	}
}
