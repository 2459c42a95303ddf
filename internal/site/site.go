// Package site holds the fixed facts the landing page and the dashboard
// show: contact data, programmes, enrollment steps and placeholder
// dashboard content.
package site

import "time"

type Contact struct {
	Address string
	Email   string
	Phone   string
}

type Program struct {
	Title       string
	Description string
	Href        string
}

type Step struct {
	Title string
	Body  string
}

type NewsItem struct {
	Title string
	Date  time.Time
}

type Subject struct {
	Name      string
	Grade     string
	Professor string
}

const (
	Name      = "Fragata Escuela Libertad"
	FullName  = "Escuela Técnica Nº 21 D.E. 10"
	Tagline   = "Formando el futuro, un estudiante a la vez"
	Copyright = "© 2024 Escuela Técnica Nº 21 D.E. 10. Todos los derechos reservados."

	SupportEmail = "soporte@tuempresa.com"
)

var SchoolContact = Contact{
	Address: "Nuñez 3638, C1430AMF Cdad. Autónoma de Buenos Aires",
	Email:   "et21web@gmail.com",
	Phone:   "011 4546-3878",
}

var About = []string{
	`La ET N° 21 "Fragata Escuela Libertad" es una institución pública de Buenos Aires que ofrece capacitación profesional de excelencia. Nos enfocamos en desarrollar habilidades técnicas y valores éticos para preparar a nuestros estudiantes para los desafíos del mundo laboral y social.`,
	"Nuestro compromiso es con el crecimiento integral de cada alumno, fomentando no solo su desarrollo académico, sino también su crecimiento personal y moral.",
}

var Programs = []Program{
	{
		Title:       "Maestro Mayor de Obras",
		Description: "Forma profesionales capaces de gestionar y ejecutar proyectos de construcción, con un enfoque en la sostenibilidad y la innovación.",
		Href:        "/plan-estudios/mmo",
	},
	{
		Title:       "Técnico en Computación",
		Description: "Prepara expertos en tecnologías de la información, desarrollo de software y sistemas computacionales para la era digital.",
		Href:        "/plan-estudios/computacion",
	},
}

var Facilities = []string{
	"/static/img/instalaciones1.svg",
	"/static/img/instalaciones2.svg",
	"/static/img/instalaciones3.svg",
	"/static/img/instalaciones4.svg",
}

var EnrollmentSteps = []Step{
	{
		Title: "Preinscripción Online",
		Body:  "Realizar la preinscripción para aspirantes a Nivel Secundario (de 1°a 6° año) a través de la página web del GCBA desde el 2 de diciembre de 2024 al 12 de enero de 2025. Ingresar desde este Link: https://www.buenosaires.gob.ar/educacion/estudiantes/inscripcionescolar El sistema otorga un número de preinscripción al finalizar el trámite.",
	},
	{
		Title: "Envío de Información por Correo",
		Body:  "Enviar un correo a la cuenta inscripcionesturnonoche@gmail.com consignando: Apellido y nombres completos, número de documento, carrera a la que se inscribe, N° de prescripción. Recibirá una respuesta con un documento PDF adjunto",
	},
	{
		Title: "Presentación de Documentación Digital",
		Body:  "Reenviar por correo el documento PDF recibido junto foto del documento de identidad y título obtenido, constancia de estudios parciales o pase de otro establecimiento (lo que corresponda) a la cuenta: movilidad.secundaria@bue.edu.ar Recibirá una respuesta con un documento PDF adjunto (Este documento es requisito indispensable para realizar la inscripción.)",
	},
	{
		Title: "Presentación Física en Secretaría",
		Body:  "Al recibir respuesta de MOVILIDAD deberá acercarse a la Secretaria escolar de lunes a viernes en el horario de 19:00 a 21:00 hs con la siguiente documentación original y copia impresa: DNI, -2 FOTOS 4X4, CARPETA DE 3 SOLAPAS, TITULO SECUNDARIO O PASE DE OTRO ESTABLECIMIENTO (según corresponda), PARTIDA DE NACIMIENTO, DICTAMEN DE MOVILIDAD, FACTURA DE SERVICIO CON EL DOMICILIO DONDE VIVE, menores de 18 años deben concurrir acompañados por un adulto responsable.",
	},
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

// News and Subjects fill the dashboard until it is backed by real data.
var News = []NewsItem{
	{Title: "Nuevo sistema de calificaciones implementado", Date: day(2023, time.May, 15)},
	{Title: "Próximo evento de ciencias el 20 de junio", Date: day(2023, time.May, 20)},
	{Title: "Resultados de las olimpiadas de matemáticas", Date: day(2023, time.May, 25)},
}

var Subjects = []Subject{
	{Name: "Matemáticas", Grade: "A", Professor: "Dr. Smith"},
	{Name: "Literatura", Grade: "B+", Professor: "Dra. Johnson"},
	{Name: "Física", Grade: "A-", Professor: "Prof. Brown"},
	{Name: "Historia", Grade: "B", Professor: "Dra. Davis"},
}
