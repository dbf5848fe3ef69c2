package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var MinioClient *minio.Client

func ConnectMinio() {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Println("⚠️ MinIO non configuré :", err)
		return
	}

	bucketName := os.Getenv("MINIO_BUCKET")
	exists, err := client.BucketExists(context.Background(), bucketName)
	if err != nil {
		log.Println("⚠️ Erreur vérification bucket MinIO :", err)
	} else if !exists {
		if err := client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{}); err != nil {
			log.Println("⚠️ Erreur création bucket MinIO :", err)
		} else {
			log.Println("🪣 Bucket créé :", bucketName)
		}
	}

	MinioClient = client
	log.Println("✅ Connecté à MinIO :", endpoint)
}

// UploadFile dépose un fichier multipart sous objectName et retourne l'URL
// publique de l'objet.
func UploadFile(ctx context.Context, objectName string, file *multipart.FileHeader) (string, error) {
	if MinioClient == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	_, err = MinioClient.PutObject(ctx, bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://%s/%s/%s", os.Getenv("MINIO_ENDPOINT"), bucket, objectName)
	return url, nil
}

// UploadBill dépose la facture de livraison d'une commande et retourne son
// URL. L'objet est rangé sous bills/<orderID>/, préfixé d'un identifiant
// aléatoire pour qu'un nouveau dépôt n'écrase jamais le précédent.
func UploadBill(ctx context.Context, orderID string, file *multipart.FileHeader) (string, error) {
	objectName := path.Join("bills", orderID, uuid.NewString()+"_"+file.Filename)
	return UploadFile(ctx, objectName, file)
}
