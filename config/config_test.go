package config

import "testing"

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadFrom_DevelopmentDefaults(t *testing.T) {
	cfg, err := LoadFrom(envOf(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Env != EnvDevelopment || cfg.Port != "5000" || cfg.UploadDir != "Uploads" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.JWTSecret == "" {
		t.Fatalf("development must get a generated secret")
	}
	if cfg.MongoURI == "" {
		t.Fatalf("development must get a default mongo uri")
	}

	other, _ := LoadFrom(envOf(map[string]string{}))
	if other.JWTSecret == cfg.JWTSecret {
		t.Fatalf("generated secrets must differ between loads")
	}
}

func TestLoadFrom_ProductionRequiresSecrets(t *testing.T) {
	_, err := LoadFrom(envOf(map[string]string{"ENV": "production", "MONGO_URI": "mongodb://db"}))
	if err == nil {
		t.Fatalf("expected missing JWT_SECRET to fail in production")
	}
	_, err = LoadFrom(envOf(map[string]string{"NODE_ENV": "production", "JWT_SECRET": "s"}))
	if err == nil {
		t.Fatalf("expected missing MONGO_URI to fail in production")
	}

	cfg, err := LoadFrom(envOf(map[string]string{
		"ENV":         "production",
		"MONGODB_URI": "mongodb://db",
		"JWT_SECRET":  "s",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UploadDir != "/tmp/Uploads" || cfg.MongoURI != "mongodb://db" {
		t.Fatalf("unexpected production config %+v", cfg)
	}
}

func TestLoadFrom_Parsing(t *testing.T) {
	cfg, err := LoadFrom(envOf(map[string]string{
		"CORS_ALLOWED_ORIGINS": " https://a.example , ,https://b.example",
		"REDIS_DB":             "2",
		"SMTP_PORT":            "2525",
		"SMTP_USER":            "bot@example.com",
		"TRUSTED_PROXIES":      "10.0.0.0/8",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
	if len(cfg.TrustedProxies) != 1 || cfg.TrustedProxies[0] != "10.0.0.0/8" {
		t.Fatalf("unexpected trusted proxies %v", cfg.TrustedProxies)
	}
	if cfg.Redis.DB != 2 || cfg.SMTP.Port != 2525 || cfg.SMTP.From != "bot@example.com" {
		t.Fatalf("unexpected parsed values %+v", cfg)
	}

	if _, err := LoadFrom(envOf(map[string]string{"REDIS_DB": "two"})); err == nil {
		t.Fatalf("expected bad REDIS_DB to fail")
	}
}

func TestMaskMongoURI(t *testing.T) {
	tests := map[string]string{
		"mongodb://admin:hunter2@db:27017/?authSource=admin": "mongodb://admin:***@db:27017/?authSource=admin",
		"mongodb://localhost:27017":                          "mongodb://localhost:27017",
		"mongodb+srv://reader@cluster.example.net/app":       "mongodb+srv://reader@cluster.example.net/app",
	}
	for in, want := range tests {
		if got := maskMongoURI(in); got != want {
			t.Fatalf("maskMongoURI(%q) = %q, want %q", in, got, want)
		}
	}
}
