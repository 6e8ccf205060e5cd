package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"cardapio-digital/pkg/config"
)

// setup-bucket prepares the S3 bucket: menu images public, snapshots private
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	s3 := cfg.Storage.S3

	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("  Bucket setup for menu images and catalog snapshots")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("\nEndpoint: %s\n", s3.Endpoint)
	fmt.Printf("Bucket: %s\n", s3.Bucket)
	fmt.Printf("Region: %s\n", s3.Region)

	client, err := minio.New(s3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s3.AccessKey, s3.SecretKey, ""),
		Secure: s3.UseSSL,
		Region: s3.Region,
	})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	ctx := context.Background()

	exists, err := client.BucketExists(ctx, s3.Bucket)
	if err != nil {
		log.Fatalf("Failed to check bucket: %v", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, s3.Bucket, minio.MakeBucketOptions{Region: s3.Region}); err != nil {
			log.Fatalf("Failed to create bucket: %v", err)
		}
		fmt.Printf("\n✓ Bucket '%s' created\n", s3.Bucket)
	} else {
		fmt.Printf("\n✓ Bucket '%s' exists\n", s3.Bucket)
	}

	policy, err := json.MarshalIndent(imagesPolicy(s3.Bucket), "", "  ")
	if err != nil {
		log.Fatalf("Failed to build policy: %v", err)
	}

	fmt.Println("\n--- Setting Bucket Policy ---")
	fmt.Println(string(policy))
	if err := client.SetBucketPolicy(ctx, s3.Bucket, string(policy)); err != nil {
		log.Printf("⚠️  Warning: Failed to set policy: %v", err)
	} else {
		fmt.Println("\n✓ Bucket policy set successfully")
	}

	fmt.Println("\n--- Testing Basic Operations ---")

	fmt.Print("Testing PutObject... ")
	check := cfg.Snapshot.Prefix + "/.setup-check"
	if _, err := client.PutObject(ctx, s3.Bucket, check, bytes.NewReader([]byte("ok")), 2, minio.PutObjectOptions{}); err != nil {
		fmt.Printf("❌ Failed: %v\n", err)
	} else {
		fmt.Println("✓ OK")
		client.RemoveObject(ctx, s3.Bucket, check, minio.RemoveObjectOptions{})
	}

	fmt.Print("Listing snapshots... ")
	count := 0
	for obj := range client.ListObjects(ctx, s3.Bucket, minio.ListObjectsOptions{Prefix: cfg.Snapshot.Prefix + "/", Recursive: true}) {
		if obj.Err != nil {
			fmt.Printf("❌ Failed: %v\n", obj.Err)
			return
		}
		count++
	}
	fmt.Printf("✓ %d found\n", count)
}

// imagesPolicy allows anonymous reads under images/ only
func imagesPolicy(bucket string) map[string]interface{} {
	return map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Sid":       "PublicReadMenuImages",
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    []string{"s3:GetObject"},
				"Resource":  []string{fmt.Sprintf("arn:aws:s3:::%s/images/*", bucket)},
			},
		},
	}
}
