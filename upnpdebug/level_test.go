package upnpdebug

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "critical", want: Critical},
		{in: "ERROR", want: Error},
		{in: " info ", want: Info},
		{in: "all", want: All},
		{in: "3", want: All},
		{in: "0", want: Critical},
		{in: "4", wantErr: true},
		{in: "verbose", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevel_UnmarshalText(t *testing.T) {
	var l Level
	if err := l.UnmarshalText([]byte("info")); err != nil {
		t.Fatalf("UnmarshalText() error = %v, want nil", err)
	}
	if l != Info {
		t.Errorf("UnmarshalText() = %v, want %v", l, Info)
	}
	if err := l.UnmarshalText([]byte("loud")); err == nil {
		t.Error("UnmarshalText(loud) error = nil, want error")
	}
}

func TestLevel_ZapMapping(t *testing.T) {
	want := map[Level]zapcore.Level{
		Critical: zapcore.ErrorLevel,
		Error:    zapcore.WarnLevel,
		Info:     zapcore.InfoLevel,
		All:      zapcore.DebugLevel,
	}
	for l, z := range want {
		if got := l.zapLevel(); got != z {
			t.Errorf("%v.zapLevel() = %v, want %v", l, got, z)
		}
	}
}

func TestModule_String(t *testing.T) {
	want := map[Module]string{
		SSDP: "SSDP", SOAP: "SOAP", GENA: "GENA", TPOOL: "TPOL",
		MSERV: "MSER", DOM: "DOM_", API: "API_", HTTP: "HTTP", Module(99): "UNKN",
	}
	for m, s := range want {
		if got := m.String(); got != s {
			t.Errorf("Module(%d).String() = %q, want %q", int(m), got, s)
		}
	}
}
