package product

import (
	"errors"
	"math"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"Mouse", "Mouse", false},
		{"  Teclado  ", "Teclado", false},
		{"", "", true},
		{"   \t", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if err != nil {
				var fe *FieldError
				if !errors.As(err, &fe) || fe.Field != FieldName {
					t.Errorf("ValidateName(%q) error = %v, want FieldError on name", tt.input, err)
				}
			}
		})
	}
}

func TestValidateCategory_Empty(t *testing.T) {
	_, err := ValidateCategory("  ")
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("ValidateCategory() error = %v, want *FieldError", err)
	}
	if fe.Field != FieldCategory || !errors.Is(err, ErrEmpty) {
		t.Errorf("got field %s err %v, want category/ErrEmpty", fe.Field, fe.Err)
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr error
	}{
		{"10", 10, nil},
		{" 0 ", 0, nil},
		{"-1", 0, ErrNegative},
		{"abc", 0, ErrNotANumber},
		{"12abc", 0, ErrNotANumber},
		{"", 0, ErrNotANumber},
		{"1.5", 0, ErrNotANumber},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQuantity(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseQuantity(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseQuantity(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr error
	}{
		{"49.9", 49.9, nil},
		{"0", 0, nil},
		{"-5", 0, ErrNegative},
		{"cinco", 0, ErrNotANumber},
		{"NaN", 0, ErrNotANumber},
		{"Inf", 0, ErrNotANumber},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParsePrice(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePrice_NegativeZero(t *testing.T) {
	for _, input := range []string{"-0", "-0.00"} {
		got, err := ParsePrice(input)
		if err != nil {
			t.Fatalf("ParsePrice(%q) error = %v", input, err)
		}
		if math.Signbit(got) {
			t.Errorf("ParsePrice(%q) = %v, want positive zero", input, got)
		}
		if s := FormatPrice(got); s != "R$ 0.00" {
			t.Errorf("FormatPrice(ParsePrice(%q)) = %q, want %q", input, s, "R$ 0.00")
		}
	}
}

func TestValidate(t *testing.T) {
	valid := Product{ID: 1, Name: "Mouse", Category: "Perifericos", Quantity: 10, Price: 49.9}
	if err := Validate(valid); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}

	tests := []struct {
		name  string
		mut   func(*Product)
		field Field
	}{
		{"blank name", func(p *Product) { p.Name = "  " }, FieldName},
		{"empty category", func(p *Product) { p.Category = "" }, FieldCategory},
		{"negative quantity", func(p *Product) { p.Quantity = -1 }, FieldQuantity},
		{"negative price", func(p *Product) { p.Price = -0.01 }, FieldPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mut(&p)
			var fe *FieldError
			if err := Validate(p); !errors.As(err, &fe) || fe.Field != tt.field {
				t.Errorf("Validate() = %v, want FieldError on %s", err, tt.field)
			}
		})
	}

	t.Run("zero id", func(t *testing.T) {
		p := valid
		p.ID = 0
		if err := Validate(p); !errors.Is(err, ErrInvalidData) {
			t.Errorf("Validate() = %v, want ErrInvalidData", err)
		}
	})
}
