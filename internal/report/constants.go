package report

const (
	ContentType = "text/plain"

	filenamePrefix = "plant-diagnosis-"
	dateLayout     = "1/2/2006"
)

const reportTemplate = `
PLANT DISEASE DIAGNOSIS REPORT
Generated by PlantDoc AI
Date: {{.Date}}

DIAGNOSIS RESULTS
================
Disease: {{.Disease}}
Confidence: {{.Confidence}}%

DESCRIPTION
===========
{{.Description}}

SYMPTOMS
========
{{.Symptoms}}

RECOMMENDED TREATMENT
====================
{{range $i, $r := .Remedies}}{{if $i}}
{{end}}{{inc $i}}. {{$r}}{{end}}

DISCLAIMER
==========
This diagnosis is provided by an AI system and should be used as a guide only. 
For critical decisions, please consult with a qualified agricultural expert or extension service.

Report generated by PlantDoc AI - Plant Disease Detection System
Powered by CNN Technology and PlantVillage Dataset
`
