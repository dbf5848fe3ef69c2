package config

import (
	"log"

	"github.com/joho/godotenv"
)

// Load charge le fichier .env s'il existe. Il alimente notamment les
// variables SCYLLA_*, REDIS_*, MINIO_*, SMTP_*, JWT_SECRET, FRONTEND_URL et
// PORT ; en production, ces variables viennent de l'environnement et
// l'absence du fichier n'est pas une erreur.
func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}
