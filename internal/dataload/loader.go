// Package dataload seeds the repositories from the organization's source
// files: talento_actual.csv (employees), org_config.json (chapters,
// skills, current roles) and vision_futura.json (future roles). Field
// names in those files are Spanish; this package owns the translation.
package dataload

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"talentgap-backend/internal/employees"
	"talentgap-backend/internal/gap"
	"talentgap-backend/internal/roles"
	"talentgap-backend/internal/shared/telemetry"
)

// Loader imports source files into the stores.
type Loader struct {
	Employees *employees.Service
	Roles     *roles.Service
}

// Summary reports what a load imported. Rows that fail to parse are
// skipped with a recorded reason, never aborting the whole load.
type Summary struct {
	Employees int      `json:"employees"`
	Roles     int      `json:"roles"`
	Skills    int      `json:"skills"`
	Skipped   []string `json:"skipped,omitempty"`
}

const (
	employeesFile = "talento_actual.csv"
	orgConfigFile = "org_config.json"
	visionFile    = "vision_futura.json"
)

// LoadDir imports every known source file found under dir. Missing
// files are not errors; a directory with none of them yields an empty
// summary.
func (l *Loader) LoadDir(ctx context.Context, dir string) (Summary, error) {
	var total Summary

	if s, err := l.LoadOrgConfig(ctx, filepath.Join(dir, orgConfigFile)); err != nil {
		if !os.IsNotExist(err) {
			return total, err
		}
	} else {
		merge(&total, s)
	}

	if s, err := l.LoadVision(ctx, filepath.Join(dir, visionFile)); err != nil {
		if !os.IsNotExist(err) {
			return total, err
		}
	} else {
		merge(&total, s)
	}

	if s, err := l.LoadEmployeesCSV(ctx, filepath.Join(dir, employeesFile)); err != nil {
		if !os.IsNotExist(err) {
			return total, err
		}
	} else {
		merge(&total, s)
	}

	telemetry.Info("dataload.complete", map[string]any{
		"dir":       dir,
		"employees": total.Employees,
		"roles":     total.Roles,
		"skills":    total.Skills,
		"skipped":   len(total.Skipped),
	})
	if len(total.Skipped) > 0 {
		telemetry.Warn("dataload.skipped", map[string]any{
			"dir":     dir,
			"reasons": total.Skipped,
		})
	}
	return total, nil
}

type ambicionesDoc struct {
	Especialidades  []string `json:"especialidades_preferidas"`
	NivelAspiracion string   `json:"nivel_aspiracion"`
}

type metadataDoc struct {
	PerformanceRating string `json:"performance_rating"`
	RetentionRisk     string `json:"retention_risk"`
	Trayectoria       string `json:"trayectoria"`
}

// LoadEmployeesCSV imports talento_actual.csv. The habilidades,
// responsabilidades_actuales, dedicación_actual, ambiciones and
// metadata columns carry embedded JSON, historically written with
// single quotes.
func (l *Loader) LoadEmployeesCSV(ctx context.Context, path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return Summary{}, fmt.Errorf("read header: %w", err)
	}
	col := indexColumns(header)

	var s Summary
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A malformed row is skipped like any other bad row; the
			// reader resumes at the next record.
			s.Skipped = append(s.Skipped, fmt.Sprintf("%s line %d: %v", employeesFile, line, err))
			continue
		}
		e, err := parseEmployeeRow(col, record)
		if err != nil {
			s.Skipped = append(s.Skipped, fmt.Sprintf("%s line %d: %v", employeesFile, line, err))
			continue
		}
		if _, err := l.Employees.Create(ctx, e); err != nil {
			s.Skipped = append(s.Skipped, fmt.Sprintf("%s line %d: %v", employeesFile, line, err))
			continue
		}
		s.Employees++
	}
	return s, nil
}

func indexColumns(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	return col
}

func field(col map[string]int, record []string, name string) string {
	i, ok := col[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseEmployeeRow(col map[string]int, record []string) (employees.Employee, error) {
	id := field(col, record, "id_empleado")
	if id == "" {
		return employees.Employee{}, fmt.Errorf("missing id_empleado")
	}

	var habilidades map[string]float64
	if err := decodeEmbeddedJSON(field(col, record, "habilidades"), &habilidades); err != nil {
		return employees.Employee{}, fmt.Errorf("habilidades: %w", err)
	}
	var responsabilidades []string
	if err := decodeEmbeddedJSON(field(col, record, "responsabilidades_actuales"), &responsabilidades); err != nil {
		return employees.Employee{}, fmt.Errorf("responsabilidades_actuales: %w", err)
	}
	var dedicacion map[string]int
	if err := decodeEmbeddedJSON(field(col, record, "dedicación_actual"), &dedicacion); err != nil {
		return employees.Employee{}, fmt.Errorf("dedicación_actual: %w", err)
	}
	var ambiciones ambicionesDoc
	if err := decodeEmbeddedJSON(field(col, record, "ambiciones"), &ambiciones); err != nil {
		return employees.Employee{}, fmt.Errorf("ambiciones: %w", err)
	}
	var metadata metadataDoc
	if err := decodeEmbeddedJSON(field(col, record, "metadata"), &metadata); err != nil {
		return employees.Employee{}, fmt.Errorf("metadata: %w", err)
	}

	skills := make(map[string]gap.Level, len(habilidades))
	for skillID, level := range habilidades {
		skills[skillID] = gap.NumericLevel(level)
	}

	meta := map[string]string{}
	if metadata.PerformanceRating != "" {
		meta["performance_rating"] = metadata.PerformanceRating
	}
	if metadata.RetentionRisk != "" {
		meta["retention_risk"] = metadata.RetentionRisk
	}
	if metadata.Trayectoria != "" {
		meta["trayectoria"] = metadata.Trayectoria
	}

	return employees.Employee{
		ID:               id,
		Name:             field(col, record, "nombre"),
		Email:            field(col, record, "email"),
		Chapter:          field(col, record, "chapter"),
		CurrentRole:      field(col, record, "rol_actual"),
		Manager:          field(col, record, "manager"),
		TenureMonths:     parseTenureMonths(field(col, record, "antigüedad")),
		Skills:           skills,
		Responsibilities: responsabilidades,
		Specialties:      ambiciones.Especialidades,
		Aspiration:       ambiciones.NivelAspiracion,
		Dedication:       dedicacion,
		Metadata:         meta,
	}, nil
}

// decodeEmbeddedJSON parses a JSON blob stored inside a CSV cell. Cells
// written by earlier tooling use single quotes instead of double quotes.
func decodeEmbeddedJSON(raw string, dst any) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err == nil {
		return nil
	}
	return json.Unmarshal([]byte(strings.ReplaceAll(raw, "'", `"`)), dst)
}

// parseTenureMonths reads values like "24m". Unparseable input yields 0.
func parseTenureMonths(raw string) int {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "m")
	months, err := strconv.Atoi(raw)
	if err != nil || months < 0 {
		return 0
	}
	return months
}

type orgConfigDoc struct {
	Skills []struct {
		ID        string  `json:"id"`
		Nombre    string  `json:"nombre"`
		Categoria string  `json:"categoria"`
		Weight    float64 `json:"weight"`
	} `json:"skills"`
	Roles []roleDoc `json:"roles"`
}

type roleDoc struct {
	ID                  string   `json:"id"`
	Titulo              string   `json:"título"`
	TituloASCII         string   `json:"titulo"`
	Nivel               string   `json:"nivel"`
	Capitulo            string   `json:"capítulo"`
	CapituloASCII       string   `json:"capitulo"`
	Responsabilidades   []string `json:"responsabilidades"`
	HabilidadesReq      []string `json:"habilidades_requeridas"`
	ObjetivosAsociados  []string `json:"objetivos_asociados"`
	DedicacionEsperada  string   `json:"dedicación_esperada"`
	DedicacionASCII     string   `json:"dedicacion_esperada"`
}

func (d roleDoc) title() string {
	if d.Titulo != "" {
		return d.Titulo
	}
	return d.TituloASCII
}

func (d roleDoc) chapter() string {
	if d.Capitulo != "" {
		return d.Capitulo
	}
	return d.CapituloASCII
}

func (d roleDoc) dedication() string {
	if d.DedicacionEsperada != "" {
		return d.DedicacionEsperada
	}
	return d.DedicacionASCII
}

// LoadOrgConfig imports skills and current roles from org_config.json.
func (l *Loader) LoadOrgConfig(ctx context.Context, path string) (Summary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, err
	}
	var doc orgConfigDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Summary{}, fmt.Errorf("%s: %w", orgConfigFile, err)
	}

	var s Summary
	for _, skill := range doc.Skills {
		if _, err := l.Roles.UpsertSkill(ctx, gap.Skill{
			ID:       skill.ID,
			Name:     skill.Nombre,
			Category: skill.Categoria,
			Weight:   skill.Weight,
		}); err != nil {
			s.Skipped = append(s.Skipped, fmt.Sprintf("%s skill %s: %v", orgConfigFile, skill.ID, err))
			continue
		}
		s.Skills++
	}

	for _, rd := range doc.Roles {
		if err := l.createRole(ctx, rd); err != nil {
			s.Skipped = append(s.Skipped, fmt.Sprintf("%s role %s: %v", orgConfigFile, rd.ID, err))
			continue
		}
		s.Roles++
	}
	return s, nil
}

type visionDoc struct {
	RolesNecesarios []roleDoc `json:"roles_necesarios"`
}

// LoadVision imports future roles from vision_futura.json. Roles
// already loaded from org_config keep their richer definition.
func (l *Loader) LoadVision(ctx context.Context, path string) (Summary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, err
	}
	var doc visionDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Summary{}, fmt.Errorf("%s: %w", visionFile, err)
	}

	var s Summary
	for _, rd := range doc.RolesNecesarios {
		if _, err := l.Roles.Get(ctx, rd.ID); err == nil {
			continue
		}
		if err := l.createRole(ctx, rd); err != nil {
			s.Skipped = append(s.Skipped, fmt.Sprintf("%s role %s: %v", visionFile, rd.ID, err))
			continue
		}
		s.Roles++
	}
	return s, nil
}

func (l *Loader) createRole(ctx context.Context, rd roleDoc) error {
	dedication := gap.DedicationRange{MinHours: 40, MaxHours: 40}
	if raw := rd.dedication(); raw != "" {
		parsed, err := gap.ParseDedicationRange(raw)
		if err != nil {
			return err
		}
		dedication = parsed
	}

	required := make(map[string]gap.Level, len(rd.HabilidadesReq))
	for _, skillID := range rd.HabilidadesReq {
		// Listed with no explicit level: the default requirement applies.
		required[skillID] = gap.Level{}
	}

	_, err := l.Roles.Create(ctx, roles.Role{
		ID:               rd.ID,
		Title:            rd.title(),
		Chapter:          rd.chapter(),
		Seniority:        rd.Nivel,
		RequiredSkills:   required,
		Responsibilities: rd.Responsabilidades,
		Objectives:       rd.ObjetivosAsociados,
		Dedication:       dedication,
	})
	return err
}

func merge(total *Summary, s Summary) {
	total.Employees += s.Employees
	total.Roles += s.Roles
	total.Skills += s.Skills
	total.Skipped = append(total.Skipped, s.Skipped...)
}
