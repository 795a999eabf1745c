package domain

import (
	"fmt"
	"math"
	"strings"
)

// Field describes one clinical measurement collected by the presentation layer.
type Field struct {
	Name    string
	Label   string
	Min     *float64
	Max     *float64
	Choices []float64
	Integer bool
	Step    float64
}

// Schema is the ordered field set of a domain. Its order is the order the
// scaler and classifier were fitted on.
type Schema struct {
	Domain Domain
	Fields []Field
}

func (s Schema) Len() int {
	return len(s.Fields)
}

func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// CheckLength rejects vectors whose length differs from the schema.
func (s Schema) CheckLength(features FeatureVector) error {
	if len(features) != len(s.Fields) {
		return fmt.Errorf("%w: %s expects %d features, got %d", ErrSchemaMismatch, s.Domain, len(s.Fields), len(features))
	}
	return nil
}

// Validate checks length, then type and range of every value.
func (s Schema) Validate(features FeatureVector) error {
	if err := s.CheckLength(features); err != nil {
		return err
	}
	for i, f := range s.Fields {
		if err := f.check(features[i]); err != nil {
			return err
		}
	}
	return nil
}

// Vector orders named values into a FeatureVector.
func (s Schema) Vector(values map[string]float64) (FeatureVector, error) {
	known := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		known[f.Name] = struct{}{}
	}
	for name := range values {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("%w: %s has no field %q", ErrInvalidFeature, s.Domain, name)
		}
	}

	features := make(FeatureVector, len(s.Fields))
	var missing []string
	for i, f := range s.Fields {
		v, ok := values[f.Name]
		if !ok {
			missing = append(missing, f.Name)
			continue
		}
		features[i] = v
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingFeature, strings.Join(missing, ", "))
	}
	return features, nil
}

func (f Field) check(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidFeature, f.Name)
	}
	if f.Integer && v != math.Trunc(v) {
		return fmt.Errorf("%w: %s must be a whole number, got %v", ErrInvalidFeature, f.Name, v)
	}
	if len(f.Choices) > 0 {
		for _, c := range f.Choices {
			if v == c {
				return nil
			}
		}
		return fmt.Errorf("%w: %s must be one of %v, got %v", ErrInvalidFeature, f.Name, f.Choices, v)
	}
	if f.Min != nil && v < *f.Min {
		return fmt.Errorf("%w: %s must be >= %v, got %v", ErrInvalidFeature, f.Name, *f.Min, v)
	}
	if f.Max != nil && v > *f.Max {
		return fmt.Errorf("%w: %s must be <= %v, got %v", ErrInvalidFeature, f.Name, *f.Max, v)
	}
	return nil
}

func SchemaFor(d Domain) (Schema, error) {
	switch d {
	case DomainHeart:
		return heartSchema, nil
	case DomainDiabetes:
		return diabetesSchema, nil
	case DomainParkinson:
		return parkinsonSchema, nil
	}
	return Schema{}, fmt.Errorf("%w: %q", ErrUnknownDomain, d)
}

func bound(v float64) *float64 {
	return &v
}

func count(name, label string) Field {
	return Field{Name: name, Label: label, Min: bound(0), Integer: true, Step: 1}
}

func age() Field {
	return Field{Name: "age", Label: "Age", Min: bound(1), Max: bound(120), Integer: true, Step: 1}
}

func choice(name, label string, choices ...float64) Field {
	return Field{Name: name, Label: label, Choices: choices, Integer: true, Step: 1}
}

func measure(name, label string, step float64) Field {
	return Field{Name: name, Label: label, Min: bound(0), Step: step}
}

func ranged(name, label string, lo, hi, step float64) Field {
	return Field{Name: name, Label: label, Min: bound(lo), Max: bound(hi), Step: step}
}

var heartSchema = Schema{
	Domain: DomainHeart,
	Fields: []Field{
		age(),
		choice("sex", "Sex (0=Female, 1=Male)", 0, 1),
		choice("cp", "Chest Pain Type", 0, 1, 2, 3),
		count("trestbps", "Resting Blood Pressure"),
		count("chol", "Serum Cholesterol"),
		choice("fbs", "Fasting Blood Sugar > 120 mg/dl (1=Yes, 0=No)", 0, 1),
		choice("restecg", "Resting ECG Results", 0, 1, 2),
		count("thalach", "Max Heart Rate"),
		choice("exang", "Exercise Induced Angina (1=Yes, 0=No)", 0, 1),
		measure("oldpeak", "ST Depression", 0.1),
		choice("slope", "Slope of ST Segment", 0, 1, 2),
		choice("ca", "Major Vessels Colored by Fluoroscopy", 0, 1, 2, 3),
		choice("thal", "Thalassemia", 1, 2, 3),
	},
}

var diabetesSchema = Schema{
	Domain: DomainDiabetes,
	Fields: []Field{
		count("pregnancies", "Pregnancies"),
		count("glucose", "Glucose Level"),
		count("blood_pressure", "Blood Pressure"),
		count("skin_thickness", "Skin Thickness"),
		count("insulin", "Insulin Level"),
		measure("bmi", "Body Mass Index (BMI)", 0.1),
		measure("diabetes_pedigree", "Diabetes Pedigree Function", 0.1),
		age(),
	},
}

var parkinsonSchema = Schema{
	Domain: DomainParkinson,
	Fields: []Field{
		measure("mdvp_fo_hz", "MDVP:Fo(Hz)", 0.1),
		measure("mdvp_fhi_hz", "MDVP:Fhi(Hz)", 0.1),
		measure("mdvp_flo_hz", "MDVP:Flo(Hz)", 0.1),
		measure("mdvp_jitter_percent", "MDVP:Jitter(%)", 0.001),
		measure("mdvp_jitter_abs", "MDVP:Jitter(Abs)", 0.001),
		measure("mdvp_rap", "MDVP:RAP", 0.001),
		measure("mdvp_ppq", "MDVP:PPQ", 0.001),
		measure("jitter_ddp", "Jitter:DDP", 0.001),
		measure("mdvp_shimmer", "MDVP:Shimmer", 0.001),
		measure("mdvp_shimmer_db", "MDVP:Shimmer(dB)", 0.1),
		measure("shimmer_apq3", "Shimmer:APQ3", 0.001),
		measure("shimmer_apq5", "Shimmer:APQ5", 0.001),
		measure("mdvp_apq", "MDVP:APQ", 0.001),
		measure("shimmer_dda", "Shimmer:DDA", 0.001),
		measure("nhr", "NHR", 0.001),
		measure("hnr", "HNR", 0.1),
		ranged("rpde", "RPDE", 0, 1, 0.001),
		ranged("dfa", "DFA", 0, 1, 0.001),
		ranged("spread1", "Spread1", -10, 1, 0.001),
		ranged("spread2", "Spread2", -1, 1, 0.001),
		measure("d2", "D2", 0.001),
		measure("ppe", "PPE", 0.001),
	},
}
