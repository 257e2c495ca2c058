package seeder

func Defaults() []Seeder {
	return []Seeder{
		EmailTemplatesSeeder{},
		ResumeSeeder{},
	}
}
