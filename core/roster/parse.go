package roster

import "time"

// Parser is the preview-stage entry point: pure layout detection,
// anchor location and entity extraction with no persistence.
type Parser struct {
	names NameValidator
}

func NewParser(nv ...NameValidator) *Parser {
	p := &Parser{names: DefaultNameValidator()}
	if len(nv) > 0 && nv[0] != nil {
		p.names = nv[0]
	}
	return p
}

// Parse classifies the Grid's layout, locates anchors, extracts all
// entities and applies filename hints. filenameHint may be empty.
//
// Failures are a *LayoutError when no supported convention could be
// anchored and an *ExtractionError when anchors yielded no usable
// entities or required metadata is missing after filename fallback.
func (p *Parser) Parse(g Grid, filenameHint string) (*ParseResult, error) {
	layout := DetectLayout(g)

	var (
		md       Metadata
		subjects []Subject
		students []Student
	)

	switch layout {
	case LayoutTabular:
		ta, err := LocateTabularHeader(g)
		if err != nil {
			return nil, err
		}
		subjects = ExtractTabularSubjects(g, ta, p.names)

		// a student matrix may still follow the subject table
		if header := locateStudentHeaderRow(g, ta.HeaderRow+1); header >= 0 {
			AlignTabularSubjects(g, header, subjects)
			ba := Anchors{SubjectCodeRow: header, ShortCodeRow: header, StudentHeaderRow: header}
			students = ExtractStudents(g, ba, subjects)
		}
		md = ExtractMetadata(g, Anchors{MetadataRow: locateMetadataRow(g)})

	default:
		ba, err := LocateBandedAnchors(g, p.names)
		if err != nil {
			return nil, err
		}
		md = ExtractMetadata(g, ba)
		subjects = ExtractSubjects(g, ba, p.names)
		students = ExtractStudents(g, ba, subjects)
	}

	ParseFilenameHints(filenameHint).Apply(&md)
	if md.AcademicYear == "" {
		if !md.FromDate.IsZero() {
			md.AcademicYear = AcademicYearOf(md.FromDate)
		} else {
			md.AcademicYear = AcademicYearOf(time.Now())
		}
	}

	if len(subjects) == 0 {
		return nil, NewExtractionError("subjects", "no subject columns found")
	}
	if md.Program == "" && md.Department == "" {
		return nil, NewExtractionError("metadata", "program/branch heading not found")
	}

	// sheet-level context propagates onto every subject
	for i := range subjects {
		subjects[i].Year = md.Year
		subjects[i].Semester = md.Semester
		subjects[i].AcademicYear = md.AcademicYear
	}

	return &ParseResult{
		Layout:   layout,
		Metadata: md,
		Subjects: subjects,
		Students: students,
		Faculty:  DeriveFaculty(subjects),
	}, nil
}
