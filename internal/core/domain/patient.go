package domain

import "time"

type Patient struct {
	ID            string    `json:"_id" bson:"_id,omitempty"`
	Nombre        string    `json:"nombre" bson:"nombre"`
	Apellido      string    `json:"apellido" bson:"apellido"`
	Edad          int       `json:"edad" bson:"edad"`
	Genero        string    `json:"genero" bson:"genero"`
	Diagnostico   string    `json:"diagnostico" bson:"diagnostico"`
	FechaRegistro time.Time `json:"fechaRegistro" bson:"fechaRegistro"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// SamplePatients is the data set loaded by the patient seeding endpoint.
func SamplePatients() []Patient {
	return []Patient{
		{Nombre: "Juan", Apellido: "Pérez", Edad: 35, Genero: "Masculino", Diagnostico: "Hipertensión arterial"},
		{Nombre: "María", Apellido: "López", Edad: 42, Genero: "Femenino", Diagnostico: "Diabetes tipo 2"},
		{Nombre: "Carlos", Apellido: "Ramírez", Edad: 29, Genero: "Masculino", Diagnostico: "Asma leve"},
		{Nombre: "Lucía", Apellido: "Martínez", Edad: 50, Genero: "Femenino", Diagnostico: "Colesterol alto"},
		{Nombre: "Andrés", Apellido: "Gómez", Edad: 60, Genero: "Masculino", Diagnostico: "Artritis reumatoide"},
	}
}
