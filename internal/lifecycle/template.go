package lifecycle

// StageDef — описание этапа в шаблоне цикла (без состояния загрузок).
type StageDef struct {
	ID             string
	Name           string
	ShortName      string
	Category       Category
	NotifiesClient bool
	TracksNC       bool
	Documents      []DocumentDef
}

type DocumentDef struct {
	ID   string
	Name string
}

// Stage returns a fresh, not-started stage for the definition.
func (d StageDef) Stage() Stage {
	st := Stage{
		ID:             d.ID,
		Name:           d.Name,
		ShortName:      d.ShortName,
		Category:       d.Category,
		NotifiesClient: d.NotifiesClient,
		Status:         StatusNotStarted,
		Documents:      make([]Document, len(d.Documents)),
	}
	for i, doc := range d.Documents {
		st.Documents[i] = Document{ID: doc.ID, Name: doc.Name}
	}
	if d.TracksNC {
		st.NonConformities = &NCCount{}
	}
	return st
}

func StagesFrom(defs []StageDef) []Stage {
	out := make([]Stage, len(defs))
	for i, d := range defs {
		out[i] = d.Stage()
	}
	return out
}

// ISOTemplate — трёхлетний цикл сертификации по ISO: от заявки до второго
// надзорного аудита.
func ISOTemplate() []StageDef {
	return []StageDef{
		{
			ID: "pre-stage-1", Name: "Pre-Stage 1 Activities", ShortName: "Pre-Stage 1",
			Category: CategoryStandard,
			Documents: []DocumentDef{
				{"doc-1", "Application form for Certification"},
				{"doc-2", "Application acknowledgement"},
				{"doc-3", "Application Review"},
				{"doc-4", "Determination of Audit Time"},
				{"doc-5", "Document Review (Adequacy audit report)"},
				{"doc-6", "Mail – date confirmation for Stage 1 audit"},
			},
		},
		{
			ID: "stage-1", Name: "Stage 1 Audit", ShortName: "Stage 1",
			Category: CategoryAudit,
			Documents: []DocumentDef{
				{"doc-7", "Stage 1 – Audit Plan and email communications"},
				{"doc-8", "Stage 1 – Audit Report"},
				{"doc-9", "Stage 1 – Signed confidentiality forms"},
				{"doc-10", "Stage 1 – Opening/Closing attendance sheets"},
				{"doc-11", "Stage 1 – Corrective actions communications"},
				{"doc-12", "Stage 1 – Audit log"},
			},
		},
		{
			ID: "pre-stage-2", Name: "Pre-Stage 2 Activities", ShortName: "Pre-Stage 2",
			Category: CategoryStandard, NotifiesClient: true,
			Documents: []DocumentDef{
				{"doc-13", "Mail – date confirmation for Stage II audit"},
			},
		},
		{
			ID: "stage-2", Name: "Stage 2 Audit", ShortName: "Stage 2",
			Category: CategoryAudit, TracksNC: true,
			Documents: []DocumentDef{
				{"doc-14", "Stage II – Audit Plan and email communications"},
				{"doc-15", "Stage II – Audit Report"},
				{"doc-16", "Stage II – Signed confidentiality forms"},
				{"doc-17", "Stage II – Opening/Closing attendance sheets"},
				{"doc-18", "Stage II – Audit log"},
				{"doc-19", "Stage II – Non-conformity Reports"},
				{"doc-20", "Stage II – Closed NC reports + evidence"},
			},
		},
		{
			ID: "certification-review", Name: "Certification Committee Review", ShortName: "Committee Review",
			Category: CategoryReview,
			Documents: []DocumentDef{
				{"doc-21", "Certification Committee Meeting minutes"},
				{"doc-22", "Decision Making form"},
				{"doc-23", "Letter of Award"},
				{"doc-24", "Certificate"},
				{"doc-25", "Certification Agreement"},
				{"doc-26", "Terms & Conditions for Certification"},
				{"doc-27", "Terms & Conditions for use of Certification Mark"},
			},
		},
		{
			ID: "pre-surveillance-1", Name: "Pre-Surveillance I", ShortName: "Pre-Surv I",
			Category: CategoryStandard, NotifiesClient: true,
			Documents: []DocumentDef{
				{"doc-28", "Notification Letter – Surveillance I Audit"},
			},
		},
		{
			ID: "surveillance-1", Name: "Surveillance I Audit", ShortName: "Surveillance I",
			Category: CategorySurveillance, TracksNC: true,
			Documents: []DocumentDef{
				{"doc-29", "Surveillance I – Audit Plan"},
				{"doc-30", "Surveillance I – Audit Report"},
				{"doc-31", "Surveillance I – Signed confidentiality forms"},
				{"doc-32", "Surveillance I – Opening/Closing attendance sheets"},
				{"doc-33", "Surveillance I – Non-conformity Report"},
				{"doc-34", "Surveillance I – Closed NC Reports + evidence"},
			},
		},
		{
			ID: "post-surveillance-1", Name: "Post-Surveillance I", ShortName: "Post-Surv I",
			Category: CategoryStandard,
			Documents: []DocumentDef{
				{"doc-35", "Letter of Continuation"},
			},
		},
		{
			ID: "pre-surveillance-2", Name: "Pre-Surveillance II", ShortName: "Pre-Surv II",
			Category: CategoryStandard, NotifiesClient: true,
			Documents: []DocumentDef{
				{"doc-36", "Notification Letter – Surveillance II Audit"},
			},
		},
		{
			ID: "surveillance-2", Name: "Surveillance II Audit", ShortName: "Surveillance II",
			Category: CategorySurveillance, TracksNC: true,
			Documents: []DocumentDef{
				{"doc-37", "Surveillance II – Audit Plan"},
				{"doc-38", "Surveillance II – Audit Report"},
				{"doc-39", "Surveillance II – Signed confidentiality forms"},
				{"doc-40", "Surveillance II – Opening/Closing attendance sheets"},
				{"doc-41", "Surveillance II – Non-conformity Report"},
				{"doc-42", "Surveillance II – Closed NC Reports + evidence"},
			},
		},
	}
}
