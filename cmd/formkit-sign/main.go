// Command formkit-sign produces a signed transloadit assembly config,
// reading the account settings from the environment and prompting for
// anything missing. Useful to smoke-test credentials and templates
// without a running form.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-formkit/pkg/transloadit"
)

func main() {
	templateKey := flag.String("template-key", "", "template id key to sign for (defaults to template_id)")
	redirect := flag.String("redirect", "", "redirect URL embedded in the config")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	settings, err := transloadit.LoadSettings()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if err := fillMissing(&settings, *templateKey); err != nil {
		log.Fatalf("Failed to read settings: %v", err)
	}

	signer := transloadit.NewSigner(settings)
	signed, err := signer.SignedConfig(*templateKey, *redirect)
	if err != nil {
		log.Fatalf("Failed to sign config: %v", err)
	}

	payload, err := json.MarshalIndent(map[string]string{
		"params":    signed.Params,
		"signature": signed.Signature,
	}, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, append(payload, '\n'), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Signed config written to %s\n", *output)
	} else {
		fmt.Println(string(payload))
	}
}

func fillMissing(settings *transloadit.Settings, templateKey string) error {
	if settings.AuthKey == "" {
		prompt := &survey.Input{Message: "Transloadit auth key:"}
		if err := survey.AskOne(prompt, &settings.AuthKey, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}
	if settings.AuthSecret == "" {
		var secret string
		prompt := &survey.Password{Message: "Transloadit auth secret:"}
		if err := survey.AskOne(prompt, &secret, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
		settings.AuthSecret = secret
	}
	if settings.TemplateID(templateKey) == "" {
		var id string
		prompt := &survey.Input{Message: "Assembly template id:"}
		if err := survey.AskOne(prompt, &id); err != nil {
			return err
		}
		if id != "" {
			key := templateKey
			if key == "" {
				key = transloadit.DefaultTemplateIDKey
			}
			if settings.TemplateIDs == nil {
				settings.TemplateIDs = make(map[string]string)
			}
			settings.TemplateIDs[key] = id
		}
	}
	return nil
}
